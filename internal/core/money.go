// Package core holds the ledger domain types and the money representation.
//
// Amounts are kept as signed integer cents. Parsing happens once at the
// service boundary; every aggregation after that is exact int64 arithmetic,
// so summaries never accumulate binary floating-point drift.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a signed amount in the currency's minor unit. Negative values are
// expenses, positive values income; the sign is supplied by the caller.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to signed cents with half-up rounding
// on the third decimal place. It accepts both dot (12.34) and comma (12,34)
// separators and an optional leading sign. Zero is a valid amount.
//
// Examples:
//
//	ParseAmount("-4.50")  -> {-450}, nil
//	ParseAmount("2000")   -> {200000}, nil
//	ParseAmount("1.005")  -> {101}, nil (rounds up)
//	ParseAmount("abc")    -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" || s == "." {
		return Money{}, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Prevent overflow when scaling to cents
	if iv > math.MaxInt64/100 {
		return Money{}, ErrInvalidAmount
	}

	// Take the first two fractional digits, half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv * 100
	if cents > math.MaxInt64-fracCents {
		return Money{}, ErrInvalidAmount
	}
	cents += fracCents
	if negative {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

// String renders the amount with two decimals, e.g. "-4.50" or "2000.00".
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// Abs returns the amount with the sign stripped.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// MarshalJSON emits the amount as a bare JSON number with exactly two
// decimals, matching what the mobile client renders.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" {
		return ErrInvalidAmount
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
