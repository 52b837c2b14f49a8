package line

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"pomelo-bot/internal/domain/entity"
)

// ToInboundEvent converts a webhook SDK event into the domain event variant.
// Event and message kinds the bot does not handle map to EventUnknown, which
// the router ignores.
func ToInboundEvent(ev webhook.EventInterface) entity.InboundEvent {
	switch e := ev.(type) {
	case webhook.FollowEvent:
		return entity.InboundEvent{
			Kind:       entity.EventFollow,
			ReplyToken: e.ReplyToken,
		}
	case webhook.MessageEvent:
		switch m := e.Message.(type) {
		case webhook.TextMessageContent:
			return entity.InboundEvent{
				Kind:       entity.EventTextMessage,
				ReplyToken: e.ReplyToken,
				Text:       m.Text,
			}
		case webhook.ImageMessageContent:
			return entity.InboundEvent{
				Kind:       entity.EventImageMessage,
				ReplyToken: e.ReplyToken,
				MessageID:  m.Id,
			}
		}
	}
	return entity.InboundEvent{Kind: entity.EventUnknown}
}
