// Package reports implements the date-bucketed aggregations behind the
// dashboard: monthly analytics, wealth evolution and the bills calendar.
// Everything here is a pure function over already-loaded rows so the
// handlers stay thin and the arithmetic stays testable.
package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MonthKey formats a time as the "YYYY-MM" bucket key used across the API.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonth parses a "YYYY-MM" key into the first instant of that month.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	return t, nil
}

// DaysIn returns the number of days in the month containing t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// ClampDay clamps a 1..31 due day to the last day of the month containing t.
// A rent due on the 31st falls on Feb 28 in a non-leap year.
func ClampDay(day int, t time.Time) int {
	if last := DaysIn(t); day > last {
		return last
	}
	return day
}

// endOfMonth returns the last instant belonging to t's month bucket.
func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}

// lastMonths returns the first instants of the n months ending with the
// month containing now, oldest first.
func lastMonths(now time.Time, n int) []time.Time {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	buckets := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		buckets = append(buckets, start.AddDate(0, -i, 0))
	}
	return buckets
}

// percentDelta compares cur against prev as a percentage. A zero previous
// month reports 100 (growth from nothing), -100 (loss from nothing) or 0.
func percentDelta(cur, prev decimal.Decimal) float64 {
	if prev.IsZero() {
		switch {
		case cur.IsPositive():
			return 100
		case cur.IsNegative():
			return -100
		default:
			return 0
		}
	}
	delta, _ := cur.Sub(prev).Div(prev.Abs()).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return delta
}

// percentOf returns part/total*100 rounded to two decimals, 0 for an empty
// total.
func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	p, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return p
}
