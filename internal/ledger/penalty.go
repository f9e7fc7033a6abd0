package ledger

import (
	"time"

	"github.com/segyhp/lease-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

// DefaultPenaltyRate is the share of monthly rent charged per late 30-day block
var DefaultPenaltyRate = decimal.RequireFromString("0.05")

// Penalty is the late charge attributed to one payment
type Penalty struct {
	DueDate     time.Time       `json:"due_date"`
	LateDays    int             `json:"late_days"`
	LatePeriods int             `json:"late_periods"`
	Amount      decimal.Decimal `json:"amount"`
}

// CalculatePenalty computes the late charge for a payment made on paymentDate.
//
// The due date of the current period is startDate plus elapsedPeriods calendar
// months. This deliberately differs from the 30-day blocks CalculateDue uses;
// stored snapshots depend on both conventions.
func CalculatePenalty(startDate time.Time, monthlyRent decimal.Decimal, elapsedPeriods int, paymentDate time.Time, rate decimal.Decimal) Penalty {
	dueDate := utils.AddMonths(startDate, elapsedPeriods)

	lateDays := utils.DaysBetween(dueDate, paymentDate)
	if lateDays < 0 {
		lateDays = 0
	}
	latePeriods := utils.CeilDiv(lateDays, PeriodDays)

	amount := decimal.Zero
	if latePeriods > 0 {
		amount = monthlyRent.Mul(rate).Mul(decimal.NewFromInt(int64(latePeriods)))
	}

	return Penalty{
		DueDate:     dueDate,
		LateDays:    lateDays,
		LatePeriods: latePeriods,
		Amount:      amount,
	}
}
