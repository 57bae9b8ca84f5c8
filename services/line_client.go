package services

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LineProfile is the subset of a LINE user profile this system stores.
type LineProfile struct {
	DisplayName string
	PictureURL  string
}

// LineClient is the interface over the LINE Messaging API used by the
// webhook flow and the dashboard. ReplyText consumes the one-time reply
// token of an inbound event; PushText is an unsolicited push to a user.
type LineClient interface {
	GetProfile(userID string) (*LineProfile, error)
	ReplyText(replyToken, text string) error
	PushText(to, text string) error
}

type lineClient struct {
	bot *linebot.Client
}

// NewLineClient creates a LineClient backed by the LINE Messaging API SDK.
func NewLineClient(channelSecret, channelAccessToken string) (LineClient, error) {
	bot, err := linebot.New(channelSecret, channelAccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE client: %w", err)
	}
	return &lineClient{bot: bot}, nil
}

// GetProfile fetches a user's display profile. Fails when the user has
// blocked the channel, which callers must treat as non-fatal.
func (c *lineClient) GetProfile(userID string) (*LineProfile, error) {
	res, err := c.bot.GetProfile(userID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch LINE profile for user %s: %w", userID, err)
	}
	return &LineProfile{
		DisplayName: res.DisplayName,
		PictureURL:  res.PictureURL,
	}, nil
}

// ReplyText answers an inbound event using its reply token.
func (c *lineClient) ReplyText(replyToken, text string) error {
	if _, err := c.bot.ReplyMessage(replyToken, linebot.NewTextMessage(text)).Do(); err != nil {
		return fmt.Errorf("failed to send LINE reply: %w", err)
	}
	return nil
}

// PushText sends a text message to a user outside of any reply context.
func (c *lineClient) PushText(to, text string) error {
	if _, err := c.bot.PushMessage(to, linebot.NewTextMessage(text)).Do(); err != nil {
		return fmt.Errorf("failed to send LINE push message to %s: %w", to, err)
	}
	return nil
}
