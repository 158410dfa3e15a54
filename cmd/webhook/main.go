package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"

	"github.com/imrishuroy/flower-order-relay/internal/aws"
	"github.com/imrishuroy/flower-order-relay/internal/config"
	"github.com/imrishuroy/flower-order-relay/internal/handlers"
	"github.com/imrishuroy/flower-order-relay/internal/idempotency"
	"github.com/imrishuroy/flower-order-relay/internal/logger"
	"github.com/imrishuroy/flower-order-relay/internal/telegram"
)

const dedupWindow = 48 * time.Hour

func setupRouter(cfg handlers.WebhookConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterWebhookRoutes(r, cfg)

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "order-relay-webhook", Env: cfg.AppEnv, Level: cfg.LogLevel})

	// updates arrive over HTTP, so skip the getMe round trip on cold start
	b, err := bot.New(cfg.BotToken, bot.WithSkipGetMe())
	if err != nil {
		log.Error("failed to init telegram client", "err", err)
		os.Exit(1)
	}

	var (
		dedup   handlers.Deduper
		metrics handlers.Metrics
	)
	if cfg.IdempotencyTable != "" || cfg.MetricsNamespace != "" {
		clients, err := aws.NewAWSClients(context.Background())
		if err != nil {
			log.Error("failed to init aws clients", "err", err)
			os.Exit(1)
		}
		if cfg.IdempotencyTable != "" {
			dedup = idempotency.NewStore(clients.DynamoDB, cfg.IdempotencyTable, dedupWindow)
		}
		if cfg.MetricsNamespace != "" {
			metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace, map[string]string{"env": cfg.AppEnv})
		}
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

	r := setupRouter(handlers.WebhookConfig{
		Router: router,
		Decode: telegram.DecodeUpdate,
		Secret: cfg.WebhookSecret,
		Dedup:  dedup,
		Logger: log,
	})

	// if RUN_LOCAL is "true", run a local HTTP server for development.
	if cfg.RunLocal {
		log.Info("running local server", "addr", cfg.HTTPAddr)
		if err := r.Run(cfg.HTTPAddr); err != nil {
			log.Error("failed to run local server", "err", err)
			os.Exit(1)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
