package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema creates the ledger tables. Every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS lease_contracts (
		id           TEXT PRIMARY KEY,
		tenant_id    TEXT NOT NULL,
		property_id  TEXT NOT NULL,
		start_date   DATE NOT NULL,
		monthly_rent NUMERIC NOT NULL CHECK (monthly_rent > 0),
		status       TEXT NOT NULL CHECK (status IN ('PENDING', 'ACTIVE', 'TERMINATED')),
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lease_payments (
		id                TEXT PRIMARY KEY,
		contract_id       TEXT NOT NULL REFERENCES lease_contracts (id),
		sequence          INTEGER NOT NULL CHECK (sequence > 0),
		amount            NUMERIC NOT NULL CHECK (amount > 0),
		payment_date      DATE NOT NULL,
		remaining_balance NUMERIC NOT NULL CHECK (remaining_balance >= 0),
		penalty           NUMERIC NOT NULL CHECK (penalty >= 0),
		exchange_rate     NUMERIC CHECK (exchange_rate > 0),
		created_at        TIMESTAMPTZ NOT NULL,
		CONSTRAINT ` + paymentSequenceConstraint + ` UNIQUE (contract_id, sequence)
	)`,
	`CREATE INDEX IF NOT EXISTS lease_payments_contract_date_idx ON lease_payments (contract_id, payment_date, id)`,
	`CREATE INDEX IF NOT EXISTS lease_payments_payment_date_idx ON lease_payments (payment_date)`,
	`CREATE INDEX IF NOT EXISTS lease_contracts_status_idx ON lease_contracts (status)`,
}

// Migrate applies Schema inside one transaction
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, stmt := range Schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}

	return tx.Commit()
}
