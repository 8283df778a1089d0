package line

import (
	"context"
	"errors"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the LINE bot SDK behind the Messenger surface the modules
// use, so chat flows can run against a mock in tests.
type Client struct {
	bot *linebot.Client
}

func New(channelSecret, channelToken string) (*Client, error) {
	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, err
	}
	return &Client{bot: bot}, nil
}

func (c *Client) Push(ctx context.Context, to string, text string) error {
	_, err := c.bot.PushMessage(to, linebot.NewTextMessage(text)).WithContext(ctx).Do()
	return err
}

// Reply sends one multi-part reply through the single-use reply token.
func (c *Client) Reply(ctx context.Context, replyToken string, texts ...string) error {
	msgs := make([]linebot.SendingMessage, 0, len(texts))
	for _, t := range texts {
		msgs = append(msgs, linebot.NewTextMessage(t))
	}
	_, err := c.bot.ReplyMessage(replyToken, msgs...).WithContext(ctx).Do()
	return err
}

// Disabled stands in when the messaging credentials are absent: every send
// fails with a configuration error, which callers log as best-effort.
type Disabled struct{}

func (Disabled) Push(ctx context.Context, to string, text string) error {
	return errors.New("LINE messaging is not configured")
}

func (Disabled) Reply(ctx context.Context, replyToken string, texts ...string) error {
	return errors.New("LINE messaging is not configured")
}
