package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-4.50", -450, true},
		{"-1", -100, true},
		{"+3.10", 310, true},
		{"2000.00", 200000, true},
		{"92233720368547758.07", 1<<63 - 1, true}, // largest representable amount
		{"abc", 0, false},
		{"92233720368547758.99", 0, false}, // would overflow when scaled to cents
		{"-92233720368547758.99", 0, false},
		{"92233720368547759", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"1e3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{-450, "-4.50"},
		{200000, "2000.00"},
		{0, "0.00"},
		{5, "0.05"},
		{-5, "-0.05"},
		{199550, "1995.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Money{Cents: -450})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "-4.50" {
		t.Fatalf("expected -4.50, got %s", b)
	}

	var m Money
	if err := json.Unmarshal([]byte("2000"), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m.Cents != 200000 {
		t.Fatalf("expected 200000 cents, got %d", m.Cents)
	}

	if err := json.Unmarshal([]byte(`"12.34"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.Cents != 1234 {
		t.Fatalf("expected 1234 cents, got %d", m.Cents)
	}

	if err := json.Unmarshal([]byte(`"abc"`), &m); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}
