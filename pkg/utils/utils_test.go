package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{name: "same day", start: baseDate, end: baseDate, expected: 0},
		{name: "time of day is ignored", start: baseDate.Add(23 * time.Hour), end: baseDate.AddDate(0, 0, 1), expected: 1},
		{name: "leap february", start: baseDate, end: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), expected: 74},
		{name: "end before start", start: baseDate, end: time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), expected: -7},
		{name: "span beyond duration range", start: baseDate, end: time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC), expected: 137331},
		{name: "negative span beyond duration range", start: time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC), end: baseDate, expected: -137331},
		{
			name:     "zone offset keeps the local calendar date",
			start:    baseDate,
			end:      time.Date(2024, 1, 2, 23, 30, 0, 0, time.FixedZone("WAT", 3600)),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "plain month",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "overflow normalises into march",
			date:     time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "across a year",
			date:     time.Date(2024, 11, 15, 10, 0, 0, 0, time.UTC),
			months:   3,
			expected: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(AddMonths(tt.date, tt.months)),
				"Expected %v, but got %v", tt.expected, AddMonths(tt.date, tt.months))
		})
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 0, CeilDiv(0, 30))
	assert.Equal(t, 0, CeilDiv(-5, 30))
	assert.Equal(t, 1, CeilDiv(1, 30))
	assert.Equal(t, 1, CeilDiv(30, 30))
	assert.Equal(t, 2, CeilDiv(31, 30))
	assert.Equal(t, 3, CeilDiv(74, 30))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", FormatDate(d))
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestMaxZeroAndSum(t *testing.T) {
	assert.True(t, MaxZero(decimal.NewFromInt(-50)).Equal(decimal.Zero))
	assert.True(t, MaxZero(decimal.NewFromInt(50)).Equal(decimal.NewFromInt(50)))

	total := SumDecimals([]decimal.Decimal{
		decimal.RequireFromString("100.25"),
		decimal.RequireFromString("199.75"),
	})
	assert.True(t, total.Equal(decimal.NewFromInt(300)))
	assert.True(t, SumDecimals(nil).Equal(decimal.Zero))
}
