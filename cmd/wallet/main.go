package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"wallet/internal/amqp"
	"wallet/internal/cli"
	apphttp "wallet/internal/http"
	"wallet/internal/ledger"
	applog "wallet/internal/log"
	"wallet/internal/middleware/ratelimit"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentApp, os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStorage(logger, cfg)
	defer repo.Close()

	// The event bus is optional: without an AMQP URL the ledger works
	// standalone and no events are published.
	var events ledger.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", applog.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("Connected to AMQP", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled, transaction events will not be published")
	}

	service := ledger.NewService(repo, events)

	srv := apphttp.NewServer(":"+cfg.Port, service, apphttp.Options{
		Logger:        logger.WithComponent(applog.ComponentHTTP),
		AllowedOrigin: cfg.AllowedOrigin,
		RateLimit: ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
		},
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Starting server",
		"port", cfg.Port,
		"allowed_origin", cfg.AllowedOrigin,
		"db_path", cfg.DBPath)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", applog.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped")
}
