package repository

import (
	"context"
	"time"

	"github.com/segyhp/lease-ledger/internal/domain"
)

// ContractRepository defines the interface for lease contract data operations.
// Lookups of a missing contract return sql.ErrNoRows.
type ContractRepository interface {
	// Create creates a new contract
	Create(ctx context.Context, contract *domain.LeaseContract) error

	// GetByID retrieves a contract by its ID
	GetByID(ctx context.Context, id string) (*domain.LeaseContract, error)

	// List retrieves contracts, optionally filtered by status
	List(ctx context.Context, status string) ([]*domain.LeaseContract, error)

	// UpdateStatus moves a contract to a new lifecycle status
	UpdateStatus(ctx context.Context, id string, status string) error

	// UpdateTerms rewrites start date and monthly rent
	UpdateTerms(ctx context.Context, contract *domain.LeaseContract) error
}

// PaymentRepository defines the interface for the append-only payment ledger.
// There is deliberately no update or delete.
type PaymentRepository interface {
	// Create appends a new payment row
	Create(ctx context.Context, payment *domain.LeasePayment) error

	// GetByContractID retrieves all payments for a contract ordered by payment date, then ID
	GetByContractID(ctx context.Context, contractID string) ([]*domain.LeasePayment, error)

	// CountByContractID counts the payments recorded against a contract
	CountByContractID(ctx context.Context, contractID string) (int, error)

	// ListBetween retrieves payments whose payment date falls in [from, to]; nil bounds are open
	ListBetween(ctx context.Context, from, to *time.Time) ([]*domain.LeasePayment, error)

	// GetLatestPerContract returns the highest-sequence payment of every contract,
	// considering only payments dated on or before asOf when it is set
	GetLatestPerContract(ctx context.Context, asOf *time.Time) ([]*domain.LeasePayment, error)
}

// Repositories groups repositories bound to the same unit of work
type Repositories struct {
	Contracts ContractRepository
	Payments  PaymentRepository
}

// Transactor serializes writes against a single contract's payment history
type Transactor interface {
	// WithContractLock runs fn holding exclusive access to the contract's ledger.
	// Writes made through repos are committed only when fn returns nil.
	WithContractLock(ctx context.Context, contractID string, fn func(ctx context.Context, repos Repositories) error) error
}
