package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ContractStatusPending    = "PENDING"
	ContractStatusActive     = "ACTIVE"
	ContractStatusTerminated = "TERMINATED"
)

// LeaseContract represents a lease between a property and a tenant
type LeaseContract struct {
	ID          string          `json:"id" db:"id"`
	TenantID    string          `json:"tenant_id" db:"tenant_id"`
	PropertyID  string          `json:"property_id" db:"property_id"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the contract accepts new payments
func (c *LeaseContract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// CanTransitionTo reports whether the lifecycle allows moving to status
func (c *LeaseContract) CanTransitionTo(status string) bool {
	switch c.Status {
	case ContractStatusPending:
		return status == ContractStatusActive || status == ContractStatusTerminated
	case ContractStatusActive:
		return status == ContractStatusTerminated
	default:
		return false
	}
}

// IsValidContractStatus reports whether s is a known contract status
func IsValidContractStatus(s string) bool {
	switch s {
	case ContractStatusPending, ContractStatusActive, ContractStatusTerminated:
		return true
	}
	return false
}

// DTOs for requests and responses

type CreateContractRequest struct {
	TenantID    string          `json:"tenant_id" validate:"required"`
	PropertyID  string          `json:"property_id" validate:"required"`
	StartDate   string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"decimal_gt=0"`
}

type UpdateTermsRequest struct {
	StartDate   *string          `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent,omitempty" validate:"omitempty,decimal_gt=0"`
}

type ContractStatement struct {
	Contract *LeaseContract  `json:"contract"`
	Payments []*LeasePayment `json:"payments"`
	// Latest snapshot values; zero when no payment exists yet.
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalPenalties   decimal.Decimal `json:"total_penalties"`
}
