package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeasePayment is an immutable ledger row. RemainingBalance and Penalty are
// snapshots computed when the payment was recorded.
type LeasePayment struct {
	ID               string              `json:"id" db:"id"`
	ContractID       string              `json:"contract_id" db:"contract_id"`
	Sequence         int                 `json:"sequence" db:"sequence"`
	Amount           decimal.Decimal     `json:"amount" db:"amount"`
	PaymentDate      time.Time           `json:"payment_date" db:"payment_date"`
	RemainingBalance decimal.Decimal     `json:"remaining_balance" db:"remaining_balance"`
	Penalty          decimal.Decimal     `json:"penalty" db:"penalty"`
	ExchangeRate     decimal.NullDecimal `json:"exchange_rate" db:"exchange_rate"`
	CreatedAt        time.Time           `json:"created_at" db:"created_at"`
}

// RecordPaymentCommand is the service-level input for recording a payment
type RecordPaymentCommand struct {
	ContractID   string
	Amount       decimal.Decimal
	PaymentDate  time.Time
	ExchangeRate decimal.NullDecimal
}

type RecordPaymentRequest struct {
	Amount       decimal.Decimal  `json:"amount"`
	PaymentDate  string           `json:"payment_date" validate:"required,datetime=2006-01-02"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty" validate:"omitempty,decimal_gt=0"`
}

// OutstandingResponse is the read-only preview of what a contract owes on a date
type OutstandingResponse struct {
	ContractID     string          `json:"contract_id"`
	AsOf           time.Time       `json:"as_of"`
	ElapsedDays    int             `json:"elapsed_days"`
	ElapsedPeriods int             `json:"elapsed_periods"`
	TotalDue       decimal.Decimal `json:"total_due"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	DueDate        time.Time       `json:"due_date"`
	LateDays       int             `json:"late_days"`
	LatePeriods    int             `json:"late_periods"`
	Penalty        decimal.Decimal `json:"penalty"`
}
