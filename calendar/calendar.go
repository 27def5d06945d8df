// Package calendar provides the business-day arithmetic behind FX
// settlement dates. FX value dates roll over weekends; currency-specific
// holiday calendars are a caller concern and are not modelled here.
package calendar

import "time"

// IsBusinessDay reports whether t is a weekday.
func IsBusinessDay(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

// AdjustFollowing rolls t forward to the next business day (Following
// convention).
func AdjustFollowing(t time.Time) time.Time {
	for !IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for i := 0; i < n; i++ {
		t = t.AddDate(0, 0, step)
		for !IsBusinessDay(t) {
			t = t.AddDate(0, 0, step)
		}
	}
	return t
}

// SpotDate returns the standard T+2 FX spot value date for a trade date.
func SpotDate(tradeDate time.Time) time.Time {
	return AddBusinessDays(tradeDate, 2)
}

// SettlementDate returns the value date for an outright forward: spot plus
// the tenor in calendar days, rolled forward if it lands on a weekend.
func SettlementDate(tradeDate time.Time, tenorDays int) time.Time {
	return AdjustFollowing(SpotDate(tradeDate).AddDate(0, 0, tenorDays))
}
