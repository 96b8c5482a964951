package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Balance.Cents != 0 || s.Income.Cents != 0 || s.Expense.Cents != 0 {
		t.Fatalf("empty set should summarize to zero, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	transactions := []Transaction{
		{Amount: Money{Cents: -450}},   // Coffee
		{Amount: Money{Cents: 200000}}, // Paycheck
	}
	s := Summarize(transactions)
	if got := s.Balance.String(); got != "1995.50" {
		t.Errorf("balance = %s, want 1995.50", got)
	}
	if got := s.Income.String(); got != "2000.00" {
		t.Errorf("income = %s, want 2000.00", got)
	}
	if got := s.Expense.String(); got != "4.50" {
		t.Errorf("expense = %s, want 4.50", got)
	}
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	sets := [][]Transaction{
		{},
		{{Amount: Money{Cents: 1}}},
		{{Amount: Money{Cents: -1}}},
		{{Amount: Money{Cents: 333}}, {Amount: Money{Cents: -111}}, {Amount: Money{Cents: -222}}},
		{{Amount: Money{Cents: 0}}, {Amount: Money{Cents: -999999}}},
	}
	for i, set := range sets {
		s := Summarize(set)
		if s.Balance.Cents != s.Income.Cents-s.Expense.Cents {
			t.Errorf("set %d: balance %d != income %d - expense %d",
				i, s.Balance.Cents, s.Income.Cents, s.Expense.Cents)
		}
	}
}

func TestSummarizeZeroAmountCountsAsIncome(t *testing.T) {
	s := Summarize([]Transaction{{Amount: Money{}}})
	if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Balance.Cents != 0 {
		t.Fatalf("zero amount should not move any aggregate, got %+v", s)
	}
}
