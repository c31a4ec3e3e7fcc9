package repository

import (
	"errors"
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	start, end, err := monthWindow("March", now)
	if err != nil {
		t.Fatalf("march: %v", err)
	}
	if start != time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("start: got %v", start)
	}
	if end != time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("end: got %v", end)
	}

	// December rolls over into the next year.
	_, end, err = monthWindow("december", now)
	if err != nil {
		t.Fatalf("december: %v", err)
	}
	if end != time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("december end: got %v", end)
	}

	if _, _, err := monthWindow("smarch", now); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	if _, _, err := monthWindow("", now); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("empty month: expected ErrInvalidMonth, got %v", err)
	}
}

func TestPerCreditPrice(t *testing.T) {
	if got := perCreditPrice(3000, 30); got != 100 {
		t.Fatalf("want 100, got %v", got)
	}
	// Blended across packages with different unit prices.
	if got := perCreditPrice(1000+3000, 10+20); got != 4000.0/30.0 {
		t.Fatalf("blended: got %v", got)
	}
	// No packages means no price, not a division by zero.
	if got := perCreditPrice(0, 0); got != 0 {
		t.Fatalf("zero credits: want 0, got %v", got)
	}
}
