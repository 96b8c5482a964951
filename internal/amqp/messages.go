package amqp

import (
	"encoding/json"
	"time"
)

// Event types carried on the transaction event bus.
const (
	EventCreated = "created"
	EventDeleted = "deleted"
)

// TransactionEvent is a lightweight message about a ledger change. It carries
// only identifiers; consumers fetch the full row from storage when they need
// it (deleted rows are gone, so the worker only uses created events to pull).
type TransactionEvent struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionEvent creates an event for the given change type.
func NewTransactionEvent(eventType, transactionID, userID string) *TransactionEvent {
	return &TransactionEvent{
		Type:          eventType,
		TransactionID: transactionID,
		UserID:        userID,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON creates an event from JSON bytes
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var event TransactionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
