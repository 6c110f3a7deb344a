package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/config"
	transport "storefront-backend/internal/http"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/payment"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	creds := &repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsDir,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		logger.Fatal("db_connect_failed", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		logger.Fatal("db_migrations_failed", zap.Error(err))
	}
	logger.Info("db_connected", zap.String("db", cfg.DBName))

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	processor := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentSecretKey)
	checkoutService := service.NewCheckoutService(processor, cfg.ClientURL, logger, m)
	reconciler := service.NewReconciler(
		repo, repo, repo,
		func(password string) (string, error) {
			return auth.HashPassword(password, cfg.BcryptCost)
		},
		cfg.PaymentWebhookSecret,
		logger,
		m,
	)

	router := transport.NewRouter(transport.RouterDeps{
		Auth:           transport.NewAuthHandler(repo, cfg.JWTSecret, cfg.BcryptCost, logger),
		Users:          transport.NewUsersHandler(repo),
		Owners:         transport.NewOwnersHandler(repo),
		Stores:         transport.NewStoresHandler(repo),
		Catalog:        transport.NewCatalogHandler(repo),
		Orders:         transport.NewOrdersHandler(repo),
		Checkout:       transport.NewCheckoutHandler(checkoutService, reconciler, logger),
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
		Gatherer:       registry,
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(router, "storefront-backend"),
	}

	go func() {
		logger.Info("http_server_start", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http_server_error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("http_server_stopping")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
}
