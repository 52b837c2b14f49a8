package port

import "context"

// Messenger sends replies addressed by a reply token. The platform accepts
// exactly one reply per token.
type Messenger interface {
	// ReplyText sends a single text reply.
	ReplyText(ctx context.Context, replyToken, text string) error

	// ReplyImageWithText sends a static image attachment followed by a text
	// message, in that order.
	ReplyImageWithText(ctx context.Context, replyToken, imageURL, text string) error
}

// ContentProvider fetches the binary content of a platform message.
type ContentProvider interface {
	GetMessageContent(ctx context.Context, messageID string) ([]byte, error)
}
