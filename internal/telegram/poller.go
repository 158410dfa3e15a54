package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/imrishuroy/flower-order-relay/internal/handlers"
)

// Dispatcher routes classified events.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev handlers.Event) error
}

// NewBot creates a Bot API client whose polling errors are logged.
func NewBot(token string, log *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	opts = append([]bot.Option{
		bot.WithErrorsHandler(func(err error) {
			log.Error("telegram polling error", "err", err)
		}),
	}, opts...)
	return bot.New(token, opts...)
}

// Attach feeds every polled update to d.
// Handler errors are logged; the update is not redelivered.
func Attach(b *bot.Bot, d Dispatcher, log *slog.Logger) {
	b.RegisterHandlerMatchFunc(
		func(*models.Update) bool { return true },
		func(ctx context.Context, _ *bot.Bot, u *models.Update) {
			handleUpdate(ctx, d, log, u)
		},
	)
}

func handleUpdate(ctx context.Context, d Dispatcher, log *slog.Logger, u *models.Update) {
	ev := EventFromUpdate(u)
	if err := d.Dispatch(ctx, ev); err != nil {
		log.Error("update handling failed",
			"update_id", ev.UpdateID,
			"kind", ev.Kind.String(),
			"chat_id", ev.ChatID,
			"err", err,
		)
	}
}
