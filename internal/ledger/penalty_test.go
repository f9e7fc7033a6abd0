package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculatePenalty(t *testing.T) {
	start := date(2024, 1, 1)
	rent := decimal.NewFromInt(300)

	tests := []struct {
		name            string
		elapsedPeriods  int
		paymentDate     time.Time
		expectedDue     time.Time
		expectedDays    int
		expectedPeriods int
		expectedAmount  decimal.Decimal
	}{
		{
			name:            "19 days late is one block",
			elapsedPeriods:  1,
			paymentDate:     date(2024, 2, 20),
			expectedDue:     date(2024, 2, 1),
			expectedDays:    19,
			expectedPeriods: 1,
			expectedAmount:  decimal.NewFromInt(15),
		},
		{
			name:           "paid on the due date",
			elapsedPeriods: 1,
			paymentDate:    date(2024, 2, 1),
			expectedDue:    date(2024, 2, 1),
			expectedAmount: decimal.Zero,
		},
		{
			name:           "paid before the due date",
			elapsedPeriods: 3,
			paymentDate:    date(2024, 3, 15),
			expectedDue:    date(2024, 4, 1),
			expectedAmount: decimal.Zero,
		},
		{
			name:            "31 days late is two blocks",
			elapsedPeriods:  1,
			paymentDate:     date(2024, 3, 3),
			expectedDue:     date(2024, 2, 1),
			expectedDays:    31,
			expectedPeriods: 2,
			expectedAmount:  decimal.NewFromInt(30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CalculatePenalty(start, rent, tt.elapsedPeriods, tt.paymentDate, DefaultPenaltyRate)
			assert.True(t, tt.expectedDue.Equal(p.DueDate), "Expected due %v, but got %v", tt.expectedDue, p.DueDate)
			assert.Equal(t, tt.expectedDays, p.LateDays)
			assert.Equal(t, tt.expectedPeriods, p.LatePeriods)
			assert.True(t, tt.expectedAmount.Equal(p.Amount), "Expected %v, but got %v", tt.expectedAmount, p.Amount)
		})
	}
}

func TestCalculatePenalty_UsesCalendarMonths(t *testing.T) {
	// February 2023 has 28 days: 30 elapsed days is still one 30-day period,
	// but start + 1 calendar month is already two days behind.
	start := date(2023, 2, 1)
	rent := decimal.NewFromInt(300)

	due, err := CalculateDue(start, date(2023, 3, 3), rent)
	assert.NoError(t, err)
	assert.Equal(t, 1, due.ElapsedPeriods)

	p := CalculatePenalty(start, rent, due.ElapsedPeriods, date(2023, 3, 3), DefaultPenaltyRate)
	assert.True(t, date(2023, 3, 1).Equal(p.DueDate))
	assert.Equal(t, 2, p.LateDays)
	assert.Equal(t, 1, p.LatePeriods)
	assert.True(t, decimal.NewFromInt(15).Equal(p.Amount))
}

func TestCalculatePenalty_NeverNegativeWhenOnTime(t *testing.T) {
	start := date(2024, 1, 1)
	rent := decimal.NewFromInt(300)

	for offset := 0; offset <= 400; offset++ {
		paymentDate := start.AddDate(0, 0, offset)
		due, err := CalculateDue(start, paymentDate, rent)
		assert.NoError(t, err)

		p := CalculatePenalty(start, rent, due.ElapsedPeriods, paymentDate, DefaultPenaltyRate)
		assert.GreaterOrEqual(t, p.LateDays, 0)
		assert.False(t, p.Amount.IsNegative())
		if !paymentDate.After(p.DueDate) {
			assert.True(t, p.Amount.IsZero(), "penalty on day %d", offset)
			assert.Equal(t, 0, p.LateDays)
		}
	}
}

func TestCalculatePenalty_CustomRate(t *testing.T) {
	p := CalculatePenalty(date(2024, 1, 1), decimal.NewFromInt(300), 1, date(2024, 2, 20), decimal.RequireFromString("0.10"))
	assert.True(t, decimal.NewFromInt(30).Equal(p.Amount))
}

func TestCalculatePenalty_IsPure(t *testing.T) {
	start := date(2024, 1, 1)
	rent := decimal.NewFromInt(300)

	first := CalculatePenalty(start, rent, 1, date(2024, 2, 20), DefaultPenaltyRate)
	second := CalculatePenalty(start, rent, 1, date(2024, 2, 20), DefaultPenaltyRate)
	assert.Equal(t, first.LateDays, second.LateDays)
	assert.Equal(t, first.LatePeriods, second.LatePeriods)
	assert.True(t, first.DueDate.Equal(second.DueDate))
	assert.True(t, first.Amount.Equal(second.Amount))
}
