package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrConfigurationMissing means a required setting is absent or unusable.
var ErrConfigurationMissing = errors.New("configuration missing")

type Config struct {
	BotToken     string `env:"BOT_TOKEN" validate:"required"`
	OrdersChatID int64  `env:"ORDERS_CHAT_ID" validate:"ne=0"`
	WebAppURL    string `env:"WEBAPP_URL" validate:"required,url"`

	WebhookSecret    string `env:"WEBHOOK_SECRET"`
	IdempotencyTable string `env:"IDEMPOTENCY_TABLE"`
	MetricsNamespace string `env:"METRICS_NAMESPACE"`

	AppEnv   string `env:"APP_ENV"`
	LogLevel string `env:"LOG_LEVEL"`
	HTTPAddr string `env:"HTTP_ADDR"`
	RunLocal bool   `env:"RUN_LOCAL"`
}

// Load reads the process configuration once at startup.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	var problems []string

	chatID, err := getEnvInt64("ORDERS_CHAT_ID")
	chatIDUnparsable := err != nil
	if chatIDUnparsable {
		problems = append(problems, "ORDERS_CHAT_ID (not an integer)")
	}

	cfg := &Config{
		BotToken:         os.Getenv("BOT_TOKEN"),
		OrdersChatID:     chatID,
		WebAppURL:        os.Getenv("WEBAPP_URL"),
		WebhookSecret:    os.Getenv("WEBHOOK_SECRET"),
		IdempotencyTable: os.Getenv("IDEMPOTENCY_TABLE"),
		MetricsNamespace: os.Getenv("METRICS_NAMESPACE"),
		AppEnv:           getEnv("APP_ENV", "dev"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		RunLocal:         os.Getenv("RUN_LOCAL") == "true",
	}

	if err := cfg.Validate(); err != nil {
		var ve validatorv10.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, err
		}
		for _, fe := range ve {
			if fe.Field() == "ORDERS_CHAT_ID" && chatIDUnparsable {
				continue
			}
			problems = append(problems, fe.Field())
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(problems, ", "))
	}
	return cfg, nil
}

// Validate checks required settings. Field errors are named by env key.
func (c *Config) Validate() error {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})
	return v.Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 returns 0 for an unset key.
func getEnvInt64(key string) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
