package ledger

import (
	"github.com/segyhp/lease-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

// OutstandingBefore is what remains owed before a new payment: max(0, totalDue - sum(prior)).
// Overpayment history never makes it negative.
func OutstandingBefore(totalDue decimal.Decimal, priorPayments []decimal.Decimal) decimal.Decimal {
	return utils.MaxZero(totalDue.Sub(utils.SumDecimals(priorPayments)))
}

// RemainingBalance applies a payment to the outstanding amount, flooring at zero
// so advance payments are accepted.
func RemainingBalance(outstandingBefore, amount decimal.Decimal) decimal.Decimal {
	return utils.MaxZero(outstandingBefore.Sub(amount))
}
