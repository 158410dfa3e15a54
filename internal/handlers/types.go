package handlers

import (
	"context"

	"github.com/imrishuroy/flower-order-relay/internal/orders"
)

// EventKind classifies an incoming chat update.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindStart
	KindWebAppData
)

func (k EventKind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindWebAppData:
		return "web_app_data"
	default:
		return "unknown"
	}
}

// Event is the platform-independent view of one incoming update.
type Event struct {
	UpdateID   int64
	Kind       EventKind
	ChatID     int64
	Text       string
	WebAppData string // raw payload posted by the web form
	Sender     orders.Sender
}

// WebAppButton is a reply keyboard button that opens a web form.
type WebAppButton struct {
	Text        string
	URL         string
	Placeholder string
}

// Outgoing is a single plain text message.
type Outgoing struct {
	ChatID       int64
	Text         string
	WebAppButton *WebAppButton
}

// Messenger delivers messages to chats.
type Messenger interface {
	Send(ctx context.Context, msg Outgoing) error
}

// Metrics counts handler outcomes.
type Metrics interface {
	Count(ctx context.Context, name string) error
}

// Metric names.
const (
	MetricOrdersForwarded   = "OrdersForwarded"
	MetricOrdersRejected    = "OrdersRejected"
	MetricPayloadsMalformed = "PayloadsMalformed"
)

// User-facing texts.
const (
	MsgStart            = "Окей. Нажми “Открыть кассу” чтобы посчитать букет и отправить заказ."
	MsgOpenCheckout     = "Открыть кассу"
	MsgCheckoutHint     = "Открой кассу и собери букет"
	MsgMalformedPayload = "Не смог прочитать заказ. Попробуй ещё раз."
	MsgInvalidCart      = "Корзина пустая или итог некорректный."
	MsgOrderSent        = "Заказ отправлен в чат ✅"
)
