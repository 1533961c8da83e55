package loan

import "time"

// DefaultInterestRate is the fixed-rate pricing baseline (5%).
const DefaultInterestRate = 0.05

// PricingFunc computes the interest rate and monthly installment for a
// principal over a term. Extension point for rate-band policies; the default
// is FixedRatePricing(DefaultInterestRate).
type PricingFunc func(principal float64, termMonths int) (rate, monthlyPayment float64)

// FixedRatePricing prices a loan as simple interest over the whole term:
// monthly = principal * (1 + rate) / termMonths.
func FixedRatePricing(rate float64) PricingFunc {
	return func(principal float64, termMonths int) (float64, float64) {
		return rate, principal * (1 + rate) / float64(termMonths)
	}
}

// GenerateSchedule produces the full repayment plan: termMonths equal
// installments, entry i due i+1 calendar months after start, all pending.
// Pure; callers fix start for reproducible output.
func GenerateSchedule(termMonths int, monthlyPayment float64, start time.Time) []ScheduleEntry {
	if termMonths <= 0 {
		return nil
	}
	entries := make([]ScheduleEntry, 0, termMonths)
	for i := 0; i < termMonths; i++ {
		entries = append(entries, ScheduleEntry{
			Seq:     i + 1,
			DueDate: AddMonths(start, i+1),
			Amount:  monthlyPayment,
			Status:  PaymentPending,
		})
	}
	return entries
}

// AddMonths advances t by n calendar months, clamping the day-of-month to
// the last day of the target month (Jan 31 + 1 month = Feb 28/29, never a
// rollover into March). Every due date is derived from the same anchor, so
// a month-end anchor does not drift across the schedule.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
