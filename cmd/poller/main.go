package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/imrishuroy/flower-order-relay/internal/aws"
	"github.com/imrishuroy/flower-order-relay/internal/config"
	"github.com/imrishuroy/flower-order-relay/internal/handlers"
	"github.com/imrishuroy/flower-order-relay/internal/logger"
	"github.com/imrishuroy/flower-order-relay/internal/shutdown"
	"github.com/imrishuroy/flower-order-relay/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "order-relay-poller", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	b, err := telegram.NewBot(cfg.BotToken, log)
	if err != nil {
		log.Error("failed to init telegram client", "err", err)
		os.Exit(1)
	}

	var metrics handlers.Metrics
	if cfg.MetricsNamespace != "" {
		clients, err := aws.NewAWSClients(ctx)
		if err != nil {
			log.Error("failed to init aws clients", "err", err)
			os.Exit(1)
		}
		metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace, map[string]string{"env": cfg.AppEnv})
	}

	h := handlers.NewOrderHandler(handlers.HandlerConfig{
		Messenger:    telegram.NewClient(b),
		OrdersChatID: cfg.OrdersChatID,
		WebAppURL:    cfg.WebAppURL,
		Metrics:      metrics,
		Logger:       log,
	})
	router := handlers.NewRouter(log).
		Handle(handlers.KindStart, h.HandleStart).
		Handle(handlers.KindWebAppData, h.HandleSubmission)

	telegram.Attach(b, router, log)

	log.Info("polling for updates", "orders_chat_id", cfg.OrdersChatID)
	b.Start(ctx)
	log.Info("poller stopped")
}
