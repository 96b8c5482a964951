// Package export mirrors ledger transactions to an external spreadsheet so
// users can work with their data outside the app. The mirror is best-effort:
// the ledger never waits on it, and a periodic scan retries rows whose export
// failed.
package export

import (
	"context"

	"wallet/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	TransactionDeleter interface {
		Delete(ctx context.Context, transactionID string) error
	}
)
