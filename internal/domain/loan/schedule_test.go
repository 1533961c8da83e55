package loan

import (
	"math"
	"testing"
	"time"
)

func TestFixedRatePricing_Default(t *testing.T) {
	rate, monthly := FixedRatePricing(DefaultInterestRate)(10000, 12)
	if rate != 0.05 {
		t.Fatalf("rate = %v, want 0.05", rate)
	}
	if math.Abs(monthly-875.0) > 1e-9 {
		t.Fatalf("monthly = %v, want 875.0", monthly)
	}
}

func TestGenerateSchedule_CountAndAmounts(t *testing.T) {
	start := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	entries := GenerateSchedule(12, 875.0, start)

	if len(entries) != 12 {
		t.Fatalf("len = %d, want 12", len(entries))
	}
	var sum float64
	for i, e := range entries {
		if e.Seq != i+1 {
			t.Fatalf("entry %d seq = %d", i, e.Seq)
		}
		if e.Status != PaymentPending {
			t.Fatalf("entry %d status = %s", i, e.Status)
		}
		if e.PaymentDate != nil {
			t.Fatalf("entry %d has a payment date before any payment", i)
		}
		if e.Amount != 875.0 {
			t.Fatalf("entry %d amount = %v", i, e.Amount)
		}
		sum += e.Amount
	}
	if math.Abs(sum-875.0*12) > 1e-9 {
		t.Fatalf("sum = %v, want %v", sum, 875.0*12)
	}
}

func TestGenerateSchedule_DueDatesMonthApart(t *testing.T) {
	start := time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)
	entries := GenerateSchedule(18, 100, start)

	prev := start
	for i, e := range entries {
		if !e.DueDate.After(prev) {
			t.Fatalf("entry %d due %v not after %v", i, e.DueDate, prev)
		}
		want := AddMonths(start, i+1)
		if !e.DueDate.Equal(want) {
			t.Fatalf("entry %d due %v, want %v", i, e.DueDate, want)
		}
		prev = e.DueDate
	}
	// year rollover: entry 6 (0-indexed) is due January 2026
	if got := entries[6].DueDate; got.Year() != 2026 || got.Month() != time.January {
		t.Fatalf("entry 7 due %v, want January 2026", got)
	}
}

func TestGenerateSchedule_ClampsMonthEnd(t *testing.T) {
	// Jan 31 anchor: February must clamp, not roll into March.
	start := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	entries := GenerateSchedule(3, 100, start)

	if got := entries[0].DueDate; got.Month() != time.February || got.Day() != 28 {
		t.Fatalf("first due = %v, want Feb 28", got)
	}
	// No drift: March comes back to the 31st because the anchor, not the
	// clamped February date, feeds every step.
	if got := entries[1].DueDate; got.Month() != time.March || got.Day() != 31 {
		t.Fatalf("second due = %v, want Mar 31", got)
	}
	if got := entries[2].DueDate; got.Month() != time.April || got.Day() != 30 {
		t.Fatalf("third due = %v, want Apr 30", got)
	}
}

func TestGenerateSchedule_LeapFebruary(t *testing.T) {
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	entries := GenerateSchedule(1, 100, start)
	if got := entries[0].DueDate; got.Month() != time.February || got.Day() != 29 {
		t.Fatalf("due = %v, want Feb 29 (leap year)", got)
	}
}

func TestGenerateSchedule_NonPositiveTerm(t *testing.T) {
	if got := GenerateSchedule(0, 100, time.Now()); got != nil {
		t.Fatalf("expected nil for zero term, got %d entries", len(got))
	}
}

func TestAddMonths_KeepsTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.May, 15, 13, 45, 30, 0, time.UTC)
	got := AddMonths(start, 2)
	if got.Hour() != 13 || got.Minute() != 45 || got.Second() != 30 {
		t.Fatalf("time of day changed: %v", got)
	}
	if got.Year() != 2025 || got.Month() != time.July || got.Day() != 15 {
		t.Fatalf("date = %v, want 2025-07-15", got)
	}
}
