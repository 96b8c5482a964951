// Package ledger orchestrates transaction operations: validation, durable
// storage, summary derivation, and event publishing.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"wallet/internal/core"
)

// Store is the persistence port the service talks to.
type Store interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// EventPublisher emits ledger change events for downstream consumers.
type EventPublisher interface {
	PublishCreated(ctx context.Context, transactionID, userID string) error
	PublishDeleted(ctx context.Context, transactionID, userID string) error
}

// Service implements the ledger operations. The event publisher is optional;
// with a nil publisher every operation is purely synchronous request/response.
type Service struct {
	store  Store
	events EventPublisher
}

func NewService(store Store, events EventPublisher) *Service {
	return &Service{
		store:  store,
		events: events,
	}
}

// Create validates and persists a new transaction, then publishes a created
// event. Publish failures are logged and swallowed: the row is durable, and
// the export worker's periodic scan covers lost events.
func (s *Service) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishCreated(ctx, created.ID, created.UserID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish created event",
				"transaction_id", created.ID, "error", err)
		}
	}

	return created, nil
}

// ListByUser returns the user's transactions newest first. A user with no
// transactions gets an empty sequence, never an error.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]core.Transaction, error) {
	transactions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// Delete removes a transaction by id. The owning user is read first so the
// deleted event can name it. No ownership check is made against the caller.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	if s.events != nil {
		if err := s.events.PublishDeleted(ctx, t.ID, t.UserID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deleted event",
				"transaction_id", t.ID, "error", err)
		}
	}

	return nil
}

// Summarize recomputes the user's balance, income and expense aggregates from
// scratch on every call. Nothing is cached.
func (s *Service) Summarize(ctx context.Context, userID string) (core.Summary, error) {
	transactions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load transactions for summary: %w", err)
	}
	return core.Summarize(transactions), nil
}

// Ready reports whether the backing store is reachable.
func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}
