package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet/internal/amqp"
	"wallet/internal/core"
	"wallet/internal/export/memory"
)

type fakeStore struct {
	transactions map[string]core.Transaction
	status       map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		transactions: make(map[string]core.Transaction),
		status:       make(map[string]string),
	}
}

func (f *fakeStore) add(t core.Transaction) {
	f.transactions[t.ID] = t
	f.status[t.ID] = "pending"
}

func (f *fakeStore) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, nil
}

func (f *fakeStore) GetPendingExport(_ context.Context, limit int) ([]core.Transaction, error) {
	var pending []core.Transaction
	for id, status := range f.status {
		if status != "synced" {
			pending = append(pending, f.transactions[id])
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (f *fakeStore) MarkExported(_ context.Context, id string) error {
	f.status[id] = "synced"
	return nil
}

func (f *fakeStore) MarkExportError(_ context.Context, id string) error {
	f.status[id] = "error"
	return nil
}

type failingWriter struct{}

func (failingWriter) Append(context.Context, core.Transaction) (string, error) {
	return "", errors.New("sheets quota exceeded")
}

func testTransaction(id, userID string) core.Transaction {
	return core.Transaction{
		ID:        id,
		UserID:    userID,
		Title:     "Coffee",
		Amount:    core.Money{Cents: -450},
		Category:  "food",
		CreatedAt: time.Now().UTC(),
	}
}

func TestHandleCreatedEvent(t *testing.T) {
	store := newFakeStore()
	sheet := memory.New()
	w := NewWorker(store, sheet, sheet, 10)

	store.add(testTransaction("tx-1", "u1"))

	err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent(amqp.EventCreated, "tx-1", "u1"))
	if err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	rows := sheet.Rows()
	if len(rows) != 1 || rows[0].ID != "tx-1" {
		t.Fatalf("rows = %+v, want the appended transaction", rows)
	}
	if store.status["tx-1"] != "synced" {
		t.Fatalf("status = %q, want synced", store.status["tx-1"])
	}
}

func TestHandleCreatedEventRowAlreadyDeleted(t *testing.T) {
	store := newFakeStore()
	sheet := memory.New()
	w := NewWorker(store, sheet, sheet, 10)

	err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent(amqp.EventCreated, "gone", "u1"))
	if err != nil {
		t.Fatalf("missing row should be skipped, not failed: %v", err)
	}
	if len(sheet.Rows()) != 0 {
		t.Fatal("nothing should have been appended")
	}
}

func TestHandleDeletedEvent(t *testing.T) {
	store := newFakeStore()
	sheet := memory.New()
	w := NewWorker(store, sheet, sheet, 10)

	store.add(testTransaction("tx-1", "u1"))
	if err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent(amqp.EventCreated, "tx-1", "u1")); err != nil {
		t.Fatal(err)
	}

	err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent(amqp.EventDeleted, "tx-1", "u1"))
	if err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(sheet.Rows()) != 0 {
		t.Fatalf("row should be removed, got %+v", sheet.Rows())
	}
}

func TestHandleDeletedEventWithoutDeleter(t *testing.T) {
	store := newFakeStore()
	w := NewWorker(store, memory.New(), nil, 10)

	err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent(amqp.EventDeleted, "tx-1", "u1"))
	if err != nil {
		t.Fatalf("missing deleter should be a no-op: %v", err)
	}
}

func TestHandleUnknownEventType(t *testing.T) {
	w := NewWorker(newFakeStore(), memory.New(), nil, 10)

	err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent("renamed", "tx-1", "u1"))
	if err != nil {
		t.Fatalf("unknown event types should be ignored: %v", err)
	}
}

func TestProcessPending(t *testing.T) {
	store := newFakeStore()
	sheet := memory.New()
	w := NewWorker(store, sheet, sheet, 10)

	store.add(testTransaction("tx-1", "u1"))
	store.add(testTransaction("tx-2", "u1"))

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if got := len(sheet.Rows()); got != 2 {
		t.Fatalf("exported %d rows, want 2", got)
	}

	// A second scan finds nothing left to do
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(sheet.Rows()); got != 2 {
		t.Fatalf("second scan re-exported rows: %d", got)
	}
}

func TestExportFailureMarksErrorAndRetries(t *testing.T) {
	store := newFakeStore()
	store.add(testTransaction("tx-1", "u1"))

	w := NewWorker(store, failingWriter{}, nil, 10)
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending should swallow per-row failures: %v", err)
	}
	if store.status["tx-1"] != "error" {
		t.Fatalf("status = %q, want error", store.status["tx-1"])
	}

	// The errored row stays eligible for the next scan
	sheet := memory.New()
	w = NewWorker(store, sheet, sheet, 10)
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.status["tx-1"] != "synced" {
		t.Fatalf("status = %q, want synced after retry", store.status["tx-1"])
	}
}

func TestStartupCheck(t *testing.T) {
	store := newFakeStore()
	sheet := memory.New()
	w := NewWorker(store, sheet, sheet, 2)

	for _, id := range []string{"tx-1", "tx-2", "tx-3"} {
		store.add(testTransaction(id, "u1"))
	}

	// Startup uses a larger batch than the periodic scan, so all three fit.
	if err := w.StartupCheck(context.Background()); err != nil {
		t.Fatalf("StartupCheck: %v", err)
	}
	if got := len(sheet.Rows()); got != 3 {
		t.Fatalf("exported %d rows, want 3", got)
	}
}
