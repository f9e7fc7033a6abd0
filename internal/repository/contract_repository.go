package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/segyhp/lease-ledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type contractRepository struct {
	db sqlx.ExtContext
}

func NewContractRepository(db *sqlx.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, contract *domain.LeaseContract) error {
	query := `
		INSERT INTO lease_contracts (id, tenant_id, property_id, start_date, monthly_rent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		contract.ID,
		contract.TenantID,
		contract.PropertyID,
		contract.StartDate,
		contract.MonthlyRent,
		contract.Status,
		contract.CreatedAt,
		contract.UpdatedAt,
	)

	return translateError(err)
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.LeaseContract, error) {
	query := `
		SELECT id, tenant_id, property_id, start_date, monthly_rent, status, created_at, updated_at
		FROM lease_contracts
		WHERE id = $1
	`

	var contract domain.LeaseContract
	err := sqlx.GetContext(ctx, r.db, &contract, query, id)
	if err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) List(ctx context.Context, status string) ([]*domain.LeaseContract, error) {
	query := `
		SELECT id, tenant_id, property_id, start_date, monthly_rent, status, created_at, updated_at
		FROM lease_contracts
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at, id
	`

	var contracts []*domain.LeaseContract
	err := sqlx.SelectContext(ctx, r.db, &contracts, query, status)
	if err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *contractRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `
		UPDATE lease_contracts
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return translateError(err)
	}
	return expectOneRow(res)
}

func (r *contractRepository) UpdateTerms(ctx context.Context, contract *domain.LeaseContract) error {
	query := `
		UPDATE lease_contracts
		SET start_date = $2, monthly_rent = $3, updated_at = $4
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		contract.ID,
		contract.StartDate,
		contract.MonthlyRent,
		time.Now(),
	)
	if err != nil {
		return translateError(err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
