// Package main starts the ShopINA storefront API server: configuration,
// logging, database, repositories, services, handlers and the HTTP router.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/shopina/internal/config"
	"github.com/atinyakov/shopina/internal/db"
	"github.com/atinyakov/shopina/internal/logger"
	"github.com/atinyakov/shopina/internal/payments"
	"github.com/atinyakov/shopina/internal/repository"
	"github.com/atinyakov/shopina/internal/server/handler/http"
	"github.com/atinyakov/shopina/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	ctx := context.Background()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Log.Fatal("failed to load config", zap.Error(err))
	}
	if err := log.Init(cfg.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	postgresDB, err := db.InitPostgres(cfg.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Drop carts nobody touched for a month.
	db.StartCartCleaner(ctx, postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention
		zapLogger,
	)

	userRepo := repository.NewPostgresUserRepository(postgresDB)
	catalogRepo := repository.NewPostgresCatalogRepository(postgresDB)
	cartRepo := repository.NewPostgresCartRepository(postgresDB)
	orderRepo := repository.NewPostgresOrderRepository(postgresDB)

	invoicer := payments.NewXenditClient(cfg.Payments.InvoiceURL, cfg.Payments.SecretKey)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	catalogService := service.NewCatalogService(catalogRepo)
	cartService := service.NewCartService(cartRepo, catalogRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, catalogRepo, invoicer, zapLogger)

	authHandler := &http.AuthHandler{AuthService: authService}
	catalogHandler := &http.CatalogHandler{CatalogService: catalogService}
	cartHandler := &http.CartHandler{CartService: cartService}
	orderHandler := &http.OrderHandler{OrderService: orderService, WebhookToken: cfg.Payments.WebhookToken}

	router := http.NewRouter(authHandler, catalogHandler, cartHandler, orderHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
