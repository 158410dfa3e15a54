package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/flower-order-relay/internal/orders"
	"github.com/imrishuroy/flower-order-relay/internal/validation"
)

// ErrConfirmFailed marks an order that reached the operations chat but whose
// confirmation to the sender could not be delivered. Redelivering the event
// would forward the order again.
var ErrConfirmFailed = errors.New("order forwarded, confirmation not delivered")

// HandlerConfig groups dependencies for the order handler.
type HandlerConfig struct {
	Messenger    Messenger
	OrdersChatID int64  // operations chat receiving receipts
	WebAppURL    string // checkout form opened from /start
	Metrics      Metrics
	Logger       *slog.Logger
	Now          func() time.Time
}

// OrderHandler relays web form orders to the operations chat.
type OrderHandler struct {
	messenger    Messenger
	ordersChatID int64
	webAppURL    string
	metrics      Metrics
	log          *slog.Logger
	nowFunc      func() time.Time
	validate     *validatorv10.Validate
}

// NewOrderHandler builds an OrderHandler. Metrics, Logger and Now are optional.
func NewOrderHandler(cfg HandlerConfig) *OrderHandler {
	h := &OrderHandler{
		messenger:    cfg.Messenger,
		ordersChatID: cfg.OrdersChatID,
		webAppURL:    cfg.WebAppURL,
		metrics:      cfg.Metrics,
		log:          cfg.Logger,
		nowFunc:      cfg.Now,
		validate:     validation.New(),
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	if h.nowFunc == nil {
		h.nowFunc = time.Now
	}
	return h
}

// HandleStart offers the checkout button.
func (h *OrderHandler) HandleStart(ctx context.Context, ev Event) error {
	err := h.messenger.Send(ctx, Outgoing{
		ChatID: ev.ChatID,
		Text:   MsgStart,
		WebAppButton: &WebAppButton{
			Text:        MsgOpenCheckout,
			URL:         h.webAppURL,
			Placeholder: MsgCheckoutHint,
		},
	})
	if err != nil {
		return fmt.Errorf("send start reply: %w", err)
	}
	return nil
}

// HandleSubmission parses a web form order, forwards the receipt to the
// operations chat and confirms to the sender. Rejected submissions only get
// a notice back.
func (h *OrderHandler) HandleSubmission(ctx context.Context, ev Event) error {
	log := h.log.With("update_id", ev.UpdateID, "chat_id", ev.ChatID)

	sub, err := validation.DecodeSubmission(ev.WebAppData, h.validate)
	switch {
	case errors.Is(err, validation.ErrMalformedPayload):
		log.Warn("could not read order payload", "err", err)
		h.count(ctx, log, MetricPayloadsMalformed)
		return h.reply(ctx, ev.ChatID, MsgMalformedPayload)
	case errors.Is(err, validation.ErrInvalidCart):
		log.Info("order rejected", "err", err)
		h.count(ctx, log, MetricOrdersRejected)
		return h.reply(ctx, ev.ChatID, MsgInvalidCart)
	case err != nil:
		return fmt.Errorf("decode submission: %w", err)
	}

	lines := make([]orders.Line, 0, len(sub.Items))
	for _, it := range sub.Items {
		lines = append(lines, orders.Line{
			Name:  string(it.Name),
			Qty:   int64(it.Qty),
			Price: int64(it.Price),
		})
	}
	receipt := orders.BuildReceipt(h.nowFunc(), ev.Sender, lines, int64(sub.Total))

	if err := h.messenger.Send(ctx, Outgoing{ChatID: h.ordersChatID, Text: receipt.Text()}); err != nil {
		return fmt.Errorf("forward order %s: %w", receipt.OrderID, err)
	}
	log.Info("order forwarded", "order_id", receipt.OrderID, "items", len(lines), "total", int64(sub.Total))
	h.count(ctx, log, MetricOrdersForwarded)

	if err := h.reply(ctx, ev.ChatID, MsgOrderSent); err != nil {
		return fmt.Errorf("%w: order %s: %v", ErrConfirmFailed, receipt.OrderID, err)
	}
	return nil
}

func (h *OrderHandler) reply(ctx context.Context, chatID int64, text string) error {
	if err := h.messenger.Send(ctx, Outgoing{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// count never fails the event; metric errors are only logged.
func (h *OrderHandler) count(ctx context.Context, log *slog.Logger, name string) {
	if h.metrics == nil {
		return
	}
	if err := h.metrics.Count(ctx, name); err != nil {
		log.Warn("metric not recorded", "metric", name, "err", err)
	}
}
