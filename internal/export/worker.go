package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wallet/internal/amqp"
	"wallet/internal/core"
)

// Store is the slice of the storage layer the worker needs.
type Store interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	GetPendingExport(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkExported(ctx context.Context, id string) error
	MarkExportError(ctx context.Context, id string) error
}

// Worker mirrors transactions to the spreadsheet, driven by AMQP events with
// a periodic pending scan as backup for lost messages.
type Worker struct {
	store     Store
	writer    TransactionWriter
	deleter   TransactionDeleter
	batchSize int
}

func NewWorker(store Store, writer TransactionWriter, deleter TransactionDeleter, batchSize int) *Worker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Worker{
		store:     store,
		writer:    writer,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single transaction event from AMQP.
func (w *Worker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	switch event.Type {
	case amqp.EventCreated:
		return w.handleCreated(ctx, event)
	case amqp.EventDeleted:
		return w.handleDeleted(ctx, event)
	default:
		slog.WarnContext(ctx, "Ignoring unknown event type",
			"type", event.Type,
			"transaction_id", event.TransactionID)
		return nil
	}
}

func (w *Worker) handleCreated(ctx context.Context, event *amqp.TransactionEvent) error {
	slog.InfoContext(ctx, "Processing created event",
		"transaction_id", event.TransactionID,
		"user_id", event.UserID)

	transaction, err := w.store.GetTransaction(ctx, event.TransactionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Deleted before we got to it; nothing to mirror.
			slog.InfoContext(ctx, "Transaction gone before export, skipping",
				"transaction_id", event.TransactionID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.exportTransaction(ctx, transaction)
}

func (w *Worker) handleDeleted(ctx context.Context, event *amqp.TransactionEvent) error {
	slog.InfoContext(ctx, "Processing deleted event",
		"transaction_id", event.TransactionID)

	if w.deleter == nil {
		slog.WarnContext(ctx, "No deleter configured, skipping spreadsheet deletion",
			"transaction_id", event.TransactionID)
		return nil
	}

	if err := w.deleter.Delete(ctx, event.TransactionID); err != nil {
		return fmt.Errorf("delete from spreadsheet: %w", err)
	}

	slog.InfoContext(ctx, "Deleted transaction from spreadsheet",
		"transaction_id", event.TransactionID)
	return nil
}

// ProcessPending exports any transactions not yet mirrored. This is the
// backup mechanism in case AMQP messages are lost.
func (w *Worker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.GetPendingExport(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, transaction := range pending {
		if err := w.exportTransaction(ctx, transaction); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction",
				"transaction_id", transaction.ID,
				"error", err)
			continue
		}
	}
	return nil
}

// StartupCheck drains the pending backlog accumulated during worker downtime.
// It uses a larger batch than the periodic scan.
func (w *Worker) StartupCheck(ctx context.Context) error {
	pending, err := w.store.GetPendingExport(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, transaction := range pending {
		if err := w.exportTransaction(ctx, transaction); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"transaction_id", transaction.ID,
				"error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup export check completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *Worker) exportTransaction(ctx context.Context, transaction core.Transaction) error {
	ref, err := w.writer.Append(ctx, transaction)
	if err != nil {
		if markErr := w.store.MarkExportError(ctx, transaction.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error",
				"transaction_id", transaction.ID,
				"error", markErr)
		}
		return fmt.Errorf("append to spreadsheet: %w", err)
	}

	if err := w.store.MarkExported(ctx, transaction.ID); err != nil {
		// The append itself worked; don't fail the event over bookkeeping.
		slog.ErrorContext(ctx, "Failed to mark as exported",
			"transaction_id", transaction.ID,
			"error", err)
	}

	slog.InfoContext(ctx, "Exported transaction",
		"transaction_id", transaction.ID,
		"export_ref", ref,
		"amount_cents", transaction.Amount.Cents)
	return nil
}
