package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"pomelo-bot/internal/domain/entity"
	"pomelo-bot/internal/domain/port"
)

// Recognized text commands, matched exactly after trimming whitespace.
const (
	cmdGreeting = "สวัสดี"
	cmdUsage    = "วิธีใช้"
)

// Router dispatches decoded webhook events to handlers. Every dispatch sends
// at most one reply; unhandled event kinds send none.
type Router struct {
	messenger       port.Messenger
	content         port.ContentProvider
	analysis        *AnalysisService
	welcomeImageURL string
}

// NewRouter creates the router.
func NewRouter(messenger port.Messenger, content port.ContentProvider, analysis *AnalysisService, welcomeImageURL string) *Router {
	return &Router{
		messenger:       messenger,
		content:         content,
		analysis:        analysis,
		welcomeImageURL: welcomeImageURL,
	}
}

// Dispatch routes one inbound event to its handler.
func (r *Router) Dispatch(ctx context.Context, ev entity.InboundEvent) error {
	switch ev.Kind {
	case entity.EventFollow:
		return r.handleFollow(ctx, ev)
	case entity.EventTextMessage:
		return r.handleText(ctx, ev)
	case entity.EventImageMessage:
		return r.handleImage(ctx, ev)
	default:
		// Unhandled event kinds produce no response.
		return nil
	}
}

func (r *Router) handleFollow(ctx context.Context, ev entity.InboundEvent) error {
	return r.messenger.ReplyImageWithText(ctx, ev.ReplyToken, r.welcomeImageURL, MsgGreeting)
}

func (r *Router) handleText(ctx context.Context, ev entity.InboundEvent) error {
	switch strings.TrimSpace(ev.Text) {
	case cmdGreeting:
		return r.messenger.ReplyText(ctx, ev.ReplyToken, MsgGreeting)
	case cmdUsage:
		return r.messenger.ReplyText(ctx, ev.ReplyToken, MsgUsage)
	default:
		return r.messenger.ReplyText(ctx, ev.ReplyToken, MsgFallback)
	}
}

func (r *Router) handleImage(ctx context.Context, ev entity.InboundEvent) error {
	if !r.analysis.Ready() {
		log.Printf("image %s dropped: detection model is not loaded", ev.MessageID)
		return r.messenger.ReplyText(ctx, ev.ReplyToken, MsgModelUnavailable)
	}

	imageData, err := r.content.GetMessageContent(ctx, ev.MessageID)
	if err != nil {
		log.Printf("fetch content %s: %v", ev.MessageID, err)
		return r.messenger.ReplyText(ctx, ev.ReplyToken, MsgProcessingError)
	}

	set, err := r.analysis.Analyze(ctx, imageData)
	if err != nil {
		var classErr *entity.ClassIndexError
		if errors.As(err, &classErr) {
			// Model and class table disagree. The deployment is broken, not
			// the request.
			log.Printf("class table mismatch, check MODEL_PATH/LABELS_PATH: %v", classErr)
		} else {
			log.Printf("analyze %s: %v", ev.MessageID, err)
		}
		return r.messenger.ReplyText(ctx, ev.ReplyToken, MsgProcessingError)
	}

	return r.messenger.ReplyText(ctx, ev.ReplyToken, FormatResult(set))
}
