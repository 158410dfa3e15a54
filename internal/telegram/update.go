package telegram

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/imrishuroy/flower-order-relay/internal/handlers"
	"github.com/imrishuroy/flower-order-relay/internal/orders"
)

const startCommand = "/start"

// EventFromUpdate classifies an update and copies the fields handlers need.
// Updates without a message are KindUnknown.
func EventFromUpdate(u *models.Update) handlers.Event {
	ev := handlers.Event{UpdateID: u.ID}
	msg := u.Message
	if msg == nil {
		return ev
	}

	ev.ChatID = msg.Chat.ID
	ev.Text = msg.Text
	if msg.From != nil {
		ev.Sender = orders.Sender{
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			Username:  msg.From.Username,
		}
	}

	switch {
	case msg.WebAppData != nil:
		ev.Kind = handlers.KindWebAppData
		ev.WebAppData = msg.WebAppData.Data
	case isStart(msg.Text):
		ev.Kind = handlers.KindStart
	}
	return ev
}

// isStart matches "/start", "/start payload" and "/start@SomeBot".
func isStart(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	cmd := fields[0]
	return cmd == startCommand || strings.HasPrefix(cmd, startCommand+"@")
}

// DecodeUpdate parses a webhook body.
func DecodeUpdate(body []byte) (handlers.Event, error) {
	var u models.Update
	if err := json.Unmarshal(body, &u); err != nil {
		return handlers.Event{}, fmt.Errorf("decode update: %w", err)
	}
	return EventFromUpdate(&u), nil
}
