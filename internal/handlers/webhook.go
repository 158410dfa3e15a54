package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SecretTokenHeader carries the secret set with setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateDecoder turns a raw webhook body into an Event.
type UpdateDecoder func(body []byte) (Event, error)

// Deduper claims update ids so redelivered updates are handled once.
type Deduper interface {
	Claim(ctx context.Context, key, kind string) (bool, error)
	MarkDone(ctx context.Context, key string) error
	MarkFailed(ctx context.Context, key, note string) error
}

// WebhookConfig groups dependencies for the webhook routes.
type WebhookConfig struct {
	Router *Router
	Decode UpdateDecoder
	Secret string  // optional; checked against SecretTokenHeader when set
	Dedup  Deduper // optional
	Logger *slog.Logger
}

// RegisterWebhookRoutes registers the update webhook.
// Updates are dispatched synchronously; a non-2xx answer makes the platform redeliver.
func RegisterWebhookRoutes(r *gin.Engine, cfg WebhookConfig) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r.POST("/webhook", func(c *gin.Context) {
		ctx := c.Request.Context()

		if cfg.Secret != "" {
			got := c.GetHeader(SecretTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.Secret)) != 1 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_secret_token"})
				return
			}
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_body"})
			return
		}
		ev, err := cfg.Decode(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_update", "msg": err.Error()})
			return
		}

		corrID := c.GetHeader("X-Request-Id")
		if corrID == "" {
			corrID = uuid.NewString()
		}
		reqLog := log.With("correlation_id", corrID, "update_id", ev.UpdateID, "kind", ev.Kind.String())

		key := fmt.Sprintf("update-%d", ev.UpdateID)
		if cfg.Dedup != nil && ev.Kind != KindUnknown {
			claimed, err := cfg.Dedup.Claim(ctx, key, ev.Kind.String())
			if err != nil {
				reqLog.Error("dedup claim failed", "err", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "dedup_failed"})
				return
			}
			if !claimed {
				reqLog.Info("duplicate update skipped")
				c.JSON(http.StatusOK, gin.H{"ok": true, "duplicate": true})
				return
			}
		}

		err = cfg.Router.Dispatch(ctx, ev)
		if errors.Is(err, ErrConfirmFailed) {
			// The forward already happened; acknowledge so it is not repeated.
			reqLog.Warn("order forwarded without confirmation", "err", err)
			err = nil
		}
		if err != nil {
			reqLog.Error("update handling failed", "err", err)
			if cfg.Dedup != nil && ev.Kind != KindUnknown {
				if merr := cfg.Dedup.MarkFailed(ctx, key, err.Error()); merr != nil {
					reqLog.Warn("dedup mark failed", "err", merr)
				}
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dispatch_failed"})
			return
		}

		if cfg.Dedup != nil && ev.Kind != KindUnknown {
			if err := cfg.Dedup.MarkDone(ctx, key); err != nil {
				reqLog.Warn("dedup mark done failed", "err", err)
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
