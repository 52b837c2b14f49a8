package entity

// EventKind enumerates the webhook event variants the bot handles.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventFollow
	EventTextMessage
	EventImageMessage
)

// InboundEvent is a decoded webhook event. ReplyToken authorizes exactly one
// reply to the triggering event.
type InboundEvent struct {
	Kind       EventKind
	ReplyToken string
	Text       string // text content, EventTextMessage only
	MessageID  string // platform message id, EventImageMessage only
}
