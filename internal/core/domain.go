package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Transaction is the sole persisted entity: one income or expense record
	// attributed to a single user. Rows are immutable once created; the only
	// lifecycle operations are create and delete.
	Transaction struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		Title     string    `json:"title"`
		Amount    Money     `json:"amount"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Summary is derived on demand from a user's transactions and never stored.
	// Income is the sum of positive amounts, Expense the sum of absolute values
	// of negative amounts, Balance the difference of the two.
	Summary struct {
		Balance Money `json:"balance"`
		Income  Money `json:"income"`
		Expense Money `json:"expense"`
	}
)

var (
	ErrMissingUserID   = errors.New("missing user id")
	ErrEmptyTitle      = errors.New("empty title")
	ErrTitleTooLong    = errors.New("title too long (max 200 characters)")
	ErrMissingCategory = errors.New("missing category")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNotFound        = errors.New("transaction not found")
)

// IsValidation reports whether err is one of the input validation errors, as
// opposed to a missing row or a storage failure.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMissingUserID,
		ErrEmptyTitle,
		ErrTitleTooLong,
		ErrMissingCategory,
		ErrInvalidAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Validate checks the caller-supplied fields of a transaction. The sign of the
// amount is client policy (negative = expense, positive = income) and is not
// checked here; zero is permitted.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.UserID) == "" {
		return ErrMissingUserID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrMissingCategory
	}
	return nil
}
