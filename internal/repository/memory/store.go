package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/segyhp/lease-ledger/internal/repository"
	customError "github.com/segyhp/lease-ledger/pkg/errors"
)

// Store is an in-memory implementation of the lease ledger repositories.
// It is safe for concurrent use; WithContractLock serializes writers per contract.
type Store struct {
	mu        sync.RWMutex
	contracts map[string]*domain.LeaseContract
	payments  map[string][]*domain.LeasePayment // by contract, in append order

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		contracts: make(map[string]*domain.LeaseContract),
		payments:  make(map[string][]*domain.LeasePayment),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Contracts returns a contract repository writing straight to the store
func (s *Store) Contracts() repository.ContractRepository {
	return &contractRepo{view{store: s}}
}

// Payments returns a payment repository writing straight to the store
func (s *Store) Payments() repository.PaymentRepository {
	return &paymentRepo{view{store: s}}
}

func (s *Store) contractLock(contractID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if _, exists := s.locks[contractID]; !exists {
		s.locks[contractID] = &sync.Mutex{}
	}
	return s.locks[contractID]
}

// WithContractLock stages fn's writes and applies them atomically when fn succeeds
func (s *Store) WithContractLock(ctx context.Context, contractID string, fn func(ctx context.Context, repos repository.Repositories) error) error {
	lock := s.contractLock(contractID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	v := view{store: s, tx: &staged{contracts: make(map[string]*domain.LeaseContract)}}
	repos := repository.Repositories{
		Contracts: &contractRepo{v},
		Payments:  &paymentRepo{v},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return s.commit(v.tx)
}

type staged struct {
	contracts map[string]*domain.LeaseContract
	payments  []*domain.LeasePayment
}

func (s *Store) commit(tx *staged) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check sequences under the write lock so a writer that bypassed
	// WithContractLock cannot be silently overwritten.
	for _, p := range tx.payments {
		if err := s.checkSequenceLocked(p); err != nil {
			return err
		}
	}
	for id, c := range tx.contracts {
		s.contracts[id] = c
	}
	for _, p := range tx.payments {
		s.payments[p.ContractID] = append(s.payments[p.ContractID], p)
	}
	return nil
}

func (s *Store) checkSequenceLocked(p *domain.LeasePayment) error {
	for _, existing := range s.payments[p.ContractID] {
		if existing.Sequence == p.Sequence {
			return fmt.Errorf("%w: sequence %d already used on contract %s", customError.ErrConcurrencyConflict, p.Sequence, p.ContractID)
		}
		if existing.ID == p.ID {
			return fmt.Errorf("payment %s already exists", p.ID)
		}
	}
	return nil
}

// view reads committed rows overlaid with the staged writes of tx.
// With a nil tx writes go straight to the store.
type view struct {
	store *Store
	tx    *staged
}

type contractRepo struct{ view }

type paymentRepo struct{ view }

var (
	_ repository.ContractRepository = (*contractRepo)(nil)
	_ repository.PaymentRepository  = (*paymentRepo)(nil)
	_ repository.Transactor         = (*Store)(nil)
)

func (r *contractRepo) Create(ctx context.Context, contract *domain.LeaseContract) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.contracts[contract.ID]; exists {
		return fmt.Errorf("contract %s already exists", contract.ID)
	}
	if r.tx != nil {
		r.tx.contracts[contract.ID] = cloneContract(contract)
		return nil
	}
	r.store.contracts[contract.ID] = cloneContract(contract)
	return nil
}

func (r *contractRepo) GetByID(ctx context.Context, id string) (*domain.LeaseContract, error) {
	c := r.lookupContract(id)
	if c == nil {
		return nil, sql.ErrNoRows
	}
	return cloneContract(c), nil
}

func (r *view) lookupContract(id string) *domain.LeaseContract {
	if r.tx != nil {
		if c, ok := r.tx.contracts[id]; ok {
			return c
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.contracts[id]
}

func (r *contractRepo) List(ctx context.Context, status string) ([]*domain.LeaseContract, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.LeaseContract
	for _, c := range r.store.contracts {
		if status == "" || c.Status == status {
			out = append(out, cloneContract(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *contractRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.mutateContract(id, func(c *domain.LeaseContract) {
		c.Status = status
	})
}

func (r *contractRepo) UpdateTerms(ctx context.Context, contract *domain.LeaseContract) error {
	return r.mutateContract(contract.ID, func(c *domain.LeaseContract) {
		c.StartDate = contract.StartDate
		c.MonthlyRent = contract.MonthlyRent
	})
}

func (r *contractRepo) mutateContract(id string, apply func(c *domain.LeaseContract)) error {
	current := r.lookupContract(id)
	if current == nil {
		return sql.ErrNoRows
	}

	updated := cloneContract(current)
	apply(updated)
	updated.UpdatedAt = time.Now()

	if r.tx != nil {
		r.tx.contracts[id] = updated
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.contracts[id] = updated
	return nil
}

func (r *paymentRepo) Create(ctx context.Context, payment *domain.LeasePayment) error {
	if r.lookupContract(payment.ContractID) == nil {
		return fmt.Errorf("payment %s references unknown contract %s", payment.ID, payment.ContractID)
	}

	if r.tx != nil {
		for _, p := range r.tx.payments {
			if p.ContractID == payment.ContractID && p.Sequence == payment.Sequence {
				return fmt.Errorf("%w: sequence %d already staged on contract %s", customError.ErrConcurrencyConflict, p.Sequence, p.ContractID)
			}
		}
		r.store.mu.RLock()
		err := r.store.checkSequenceLocked(payment)
		r.store.mu.RUnlock()
		if err != nil {
			return err
		}
		r.tx.payments = append(r.tx.payments, clonePayment(payment))
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkSequenceLocked(payment); err != nil {
		return err
	}
	r.store.payments[payment.ContractID] = append(r.store.payments[payment.ContractID], clonePayment(payment))
	return nil
}

func (r *view) paymentsFor(contractID string) []*domain.LeasePayment {
	r.store.mu.RLock()
	rows := append([]*domain.LeasePayment(nil), r.store.payments[contractID]...)
	r.store.mu.RUnlock()

	if r.tx != nil {
		for _, p := range r.tx.payments {
			if p.ContractID == contractID {
				rows = append(rows, p)
			}
		}
	}
	return rows
}

func (r *paymentRepo) GetByContractID(ctx context.Context, contractID string) ([]*domain.LeasePayment, error) {
	rows := r.paymentsFor(contractID)
	out := make([]*domain.LeasePayment, 0, len(rows))
	for _, p := range rows {
		out = append(out, clonePayment(p))
	}
	sortPayments(out)
	return out, nil
}

func (r *paymentRepo) CountByContractID(ctx context.Context, contractID string) (int, error) {
	return len(r.paymentsFor(contractID)), nil
}

func (r *paymentRepo) ListBetween(ctx context.Context, from, to *time.Time) ([]*domain.LeasePayment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.LeasePayment
	for _, rows := range r.store.payments {
		for _, p := range rows {
			if from != nil && p.PaymentDate.Before(*from) {
				continue
			}
			if to != nil && p.PaymentDate.After(*to) {
				continue
			}
			out = append(out, clonePayment(p))
		}
	}
	sortPayments(out)
	return out, nil
}

func (r *paymentRepo) GetLatestPerContract(ctx context.Context, asOf *time.Time) ([]*domain.LeasePayment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.LeasePayment
	for _, rows := range r.store.payments {
		var latest *domain.LeasePayment
		for _, p := range rows {
			if asOf != nil && p.PaymentDate.After(*asOf) {
				continue
			}
			if latest == nil || p.Sequence > latest.Sequence {
				latest = p
			}
		}
		if latest != nil {
			out = append(out, clonePayment(latest))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContractID < out[j].ContractID })
	return out, nil
}

func sortPayments(rows []*domain.LeasePayment) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PaymentDate.Equal(rows[j].PaymentDate) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].PaymentDate.Before(rows[j].PaymentDate)
	})
}

func cloneContract(c *domain.LeaseContract) *domain.LeaseContract {
	cp := *c
	return &cp
}

func clonePayment(p *domain.LeasePayment) *domain.LeasePayment {
	cp := *p
	return &cp
}
