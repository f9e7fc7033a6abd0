package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// TruncateToDate drops the time-of-day and zone, keeping the calendar date in UTC
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole number of calendar days from start to end.
// Negative when end is before start. Counted on Unix seconds because
// time.Duration saturates after roughly 292 years.
func DaysBetween(start, end time.Time) int {
	s := TruncateToDate(start)
	e := TruncateToDate(end)
	return int((e.Unix() - s.Unix()) / secondsPerDay)
}

// AddMonths adds calendar months, normalising overflowing days the way time.AddDate does
// (Jan 31 + 1 month = Mar 2 or Mar 3)
func AddMonths(date time.Time, months int) time.Time {
	return TruncateToDate(date).AddDate(0, months, 0)
}

// CeilDiv divides two non-negative ints rounding up
func CeilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// ParseDate parses a YYYY-MM-DD string into a UTC date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateToDate(t), nil
}

// FormatDate renders a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MaxZero floors a decimal at zero
func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SumDecimals adds up a list of amounts
func SumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

