package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	customError "github.com/segyhp/lease-ledger/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres error codes that mean another writer got there first
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
	pqUniqueViolation      = "23505"

	paymentSequenceConstraint = "lease_payments_contract_sequence_key"
)

type postgresTransactor struct {
	db *sqlx.DB
}

// NewTransactor returns a Transactor that locks the contract row with
// SELECT ... FOR UPDATE for the duration of one SQL transaction.
func NewTransactor(db *sqlx.DB) Transactor {
	return &postgresTransactor{db: db}
}

func (t *postgresTransactor) WithContractLock(ctx context.Context, contractID string, fn func(ctx context.Context, repos Repositories) error) (err error) {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// A missing contract is left for fn to report.
	var locked string
	lockErr := tx.GetContext(ctx, &locked, `SELECT id FROM lease_contracts WHERE id = $1 FOR UPDATE`, contractID)
	if lockErr != nil && !errors.Is(lockErr, sql.ErrNoRows) {
		return translateError(lockErr)
	}

	repos := Repositories{
		Contracts: &contractRepository{db: tx},
		Payments:  &paymentRepository{db: tx},
	}
	if err = fn(ctx, repos); err != nil {
		return translateError(err)
	}

	if err = tx.Commit(); err != nil {
		return translateError(err)
	}
	return nil
}

// translateError maps driver errors that signal a concurrent writer onto
// ErrConcurrencyConflict and leaves everything else untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable:
		return fmt.Errorf("%w: %v", customError.ErrConcurrencyConflict, err)
	case pqUniqueViolation:
		if pqErr.Constraint == paymentSequenceConstraint {
			return fmt.Errorf("%w: %v", customError.ErrConcurrencyConflict, err)
		}
	}
	return err
}
