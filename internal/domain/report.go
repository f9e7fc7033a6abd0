package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummary aggregates persisted ledger snapshots
type ReportSummary struct {
	From               *time.Time      `json:"from,omitempty"`
	To                 *time.Time      `json:"to,omitempty"`
	PaymentCount       int             `json:"payment_count"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	TotalPenalties     decimal.Decimal `json:"total_penalties"`
	TotalOutstanding   decimal.Decimal `json:"total_outstanding"`
	ContractsInArrears int             `json:"contracts_in_arrears"`
}

// ArrearsEntry is one contract whose latest snapshot still owes money
type ArrearsEntry struct {
	ContractID       string          `json:"contract_id"`
	TenantID         string          `json:"tenant_id"`
	PropertyID       string          `json:"property_id"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	LastPaymentDate  time.Time       `json:"last_payment_date"`
	LastSequence     int             `json:"last_sequence"`
}

type ArrearsResponse struct {
	AsOf    *time.Time      `json:"as_of,omitempty"`
	Entries []*ArrearsEntry `json:"entries"`
	Total   decimal.Decimal `json:"total"`
}
