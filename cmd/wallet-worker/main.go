package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"wallet/internal/amqp"
	"wallet/internal/cli"
	"wallet/internal/export"
	"wallet/internal/export/google"
	"wallet/internal/export/memory"
	applog "wallet/internal/log"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentWorker, os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting wallet-worker")

	repo := cli.InitStorage(logger, cfg)
	defer repo.Close()

	// Spreadsheet target: Google Sheets when configured, otherwise an
	// in-memory stand-in so the worker can run locally end to end.
	var (
		writer  export.TransactionWriter
		deleter export.TransactionDeleter
	)
	if cfg.ExportSpreadsheetID != "" {
		client, err := google.New(context.Background(), google.Config{
			SpreadsheetID: cfg.ExportSpreadsheetID,
			SheetName:     cfg.ExportSheetName,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		writer, deleter = client, client
		logger.Info("Google Sheets export target initialized",
			"spreadsheet_id", cfg.ExportSpreadsheetID,
			"sheet", cfg.ExportSheetName)
	} else {
		store := memory.New()
		writer, deleter = store, store
		logger.Info("No EXPORT_SPREADSHEET_ID set, using in-memory export target")
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	worker := export.NewWorker(repo, writer, deleter, cfg.ExportBatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Drain the backlog accumulated while the worker was down.
	if err := worker.StartupCheck(ctx); err != nil {
		logger.Error("Startup export check failed", applog.FieldError, err)
		// Keep going; the periodic scan retries.
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.Consume(ctx, worker.HandleEvent)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := worker.ProcessPending(ctx); err != nil {
					logger.Error("Periodic export scan failed", applog.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped")
}
