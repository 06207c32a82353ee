// Package config loads server configuration from environment variables.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the storefront API server configuration.
type Config struct {
	// Addr is the listen address (ip:port).
	Addr string `env:"SERVER_ADDRESS, default=localhost:8080"`
	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string `env:"DATABASE_DSN"`
	// JWTSecret signs access tokens.
	JWTSecret string `env:"JWT_SECRET, default=dev-secret"`
	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Payments PaymentsConfig
}

// PaymentsConfig configures the payment provider used at checkout.
type PaymentsConfig struct {
	// InvoiceURL is the provider's create-invoice endpoint.
	InvoiceURL string `env:"PAYMENT_INVOICE_URL, default=https://api.xendit.co/v2/invoices"`
	// SecretKey authenticates invoice requests.
	SecretKey string `env:"PAYMENT_SECRET_KEY"`
	// WebhookToken authenticates the provider's status callbacks.
	WebhookToken string `env:"PAYMENT_WEBHOOK_TOKEN"`
}

// Load reads the configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
