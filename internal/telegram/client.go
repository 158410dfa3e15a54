package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/imrishuroy/flower-order-relay/internal/handlers"
)

// MessageSender is the part of *bot.Bot used to send messages.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Client implements handlers.Messenger on top of the Bot API.
type Client struct {
	api MessageSender
}

func NewClient(api MessageSender) *Client {
	return &Client{api: api}
}

// Send delivers msg as plain text. A WebAppButton becomes a one-button reply keyboard.
func (c *Client) Send(ctx context.Context, msg handlers.Outgoing) error {
	params := &bot.SendMessageParams{
		ChatID: msg.ChatID,
		Text:   msg.Text,
	}
	if b := msg.WebAppButton; b != nil {
		params.ReplyMarkup = &models.ReplyKeyboardMarkup{
			Keyboard: [][]models.KeyboardButton{
				{{Text: b.Text, WebApp: &models.WebAppInfo{URL: b.URL}}},
			},
			ResizeKeyboard:        true,
			InputFieldPlaceholder: b.Placeholder,
		}
	}

	if _, err := c.api.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("telegram send to %d: %w", msg.ChatID, err)
	}
	return nil
}
