// Package ledger holds the pure lease arithmetic: rent periods due, balances
// and late penalties. Nothing here reads storage or the wall clock.
package ledger

import (
	"time"

	customError "github.com/segyhp/lease-ledger/pkg/errors"
	"github.com/segyhp/lease-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

// PeriodDays is the length of one billing period for due-amount purposes.
// It is a fixed 30-day block, not a calendar month.
const PeriodDays = 30

// DueAmount is the rent owed on a contract as of a date
type DueAmount struct {
	ElapsedDays    int             `json:"elapsed_days"`
	ElapsedPeriods int             `json:"elapsed_periods"`
	TotalDue       decimal.Decimal `json:"total_due"`
}

// CalculateDue counts the rent periods due between startDate and asOfDate.
// The first period is due on the start date itself; each further started
// 30-day block adds one more.
func CalculateDue(startDate, asOfDate time.Time, monthlyRent decimal.Decimal) (DueAmount, error) {
	if !monthlyRent.IsPositive() {
		return DueAmount{}, customError.WrapInvalidRent(monthlyRent.String())
	}

	elapsedDays := utils.DaysBetween(startDate, asOfDate)
	if elapsedDays < 0 {
		return DueAmount{}, customError.WrapInvalidDateRange(utils.FormatDate(asOfDate), utils.FormatDate(startDate))
	}

	periods := ElapsedPeriods(elapsedDays)
	return DueAmount{
		ElapsedDays:    elapsedDays,
		ElapsedPeriods: periods,
		TotalDue:       monthlyRent.Mul(decimal.NewFromInt(int64(periods))),
	}, nil
}

// ElapsedPeriods converts elapsed days into billable periods: max(1, ceil(days/30))
func ElapsedPeriods(elapsedDays int) int {
	periods := utils.CeilDiv(elapsedDays, PeriodDays)
	if periods < 1 {
		return 1
	}
	return periods
}
