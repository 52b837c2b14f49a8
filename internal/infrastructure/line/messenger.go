package line

import (
	"context"
	"fmt"
	"io"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Client wraps the LINE Messaging API for replies and content download. It
// implements port.Messenger and port.ContentProvider.
type Client struct {
	api  *messaging_api.MessagingApiAPI
	blob *messaging_api.MessagingApiBlobAPI
}

// NewClient creates a client for the given channel access token.
func NewClient(channelToken string) (*Client, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("messaging api: %w", err)
	}
	blob, err := messaging_api.NewMessagingApiBlobAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("blob api: %w", err)
	}
	return &Client{api: api, blob: blob}, nil
}

// ReplyText sends a single text reply.
func (c *Client) ReplyText(ctx context.Context, replyToken, text string) error {
	_ = ctx
	_, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

// ReplyImageWithText sends a static image attachment followed by a text
// message, in that order.
func (c *Client) ReplyImageWithText(ctx context.Context, replyToken, imageURL, text string) error {
	_ = ctx
	_, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.ImageMessage{
				OriginalContentUrl: imageURL,
				PreviewImageUrl:    imageURL,
			},
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

// GetMessageContent downloads the bytes of an image message.
func (c *Client) GetMessageContent(ctx context.Context, messageID string) ([]byte, error) {
	_ = ctx
	resp, err := c.blob.GetMessageContent(messageID)
	if err != nil {
		return nil, fmt.Errorf("get message content: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}
