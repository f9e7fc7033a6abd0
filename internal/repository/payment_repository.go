package repository

import (
	"context"
	"time"

	"github.com/segyhp/lease-ledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

const paymentColumns = `id, contract_id, sequence, amount, payment_date, remaining_balance, penalty, exchange_rate, created_at`

type paymentRepository struct {
	db sqlx.ExtContext
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.LeasePayment) error {
	query := `
		INSERT INTO lease_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.ContractID,
		payment.Sequence,
		payment.Amount,
		payment.PaymentDate,
		payment.RemainingBalance,
		payment.Penalty,
		payment.ExchangeRate,
		payment.CreatedAt,
	)

	return translateError(err)
}

func (r *paymentRepository) GetByContractID(ctx context.Context, contractID string) ([]*domain.LeasePayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM lease_payments
		WHERE contract_id = $1
		ORDER BY payment_date, id
	`

	var payments []*domain.LeasePayment
	err := sqlx.SelectContext(ctx, r.db, &payments, query, contractID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) CountByContractID(ctx context.Context, contractID string) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM lease_payments WHERE contract_id = $1`, contractID)
	return count, err
}

func (r *paymentRepository) ListBetween(ctx context.Context, from, to *time.Time) ([]*domain.LeasePayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM lease_payments
		WHERE ($1::date IS NULL OR payment_date >= $1::date)
		  AND ($2::date IS NULL OR payment_date <= $2::date)
		ORDER BY payment_date, id
	`

	var payments []*domain.LeasePayment
	err := sqlx.SelectContext(ctx, r.db, &payments, query, from, to)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetLatestPerContract(ctx context.Context, asOf *time.Time) ([]*domain.LeasePayment, error) {
	query := `
		SELECT DISTINCT ON (contract_id) ` + paymentColumns + `
		FROM lease_payments
		WHERE ($1::date IS NULL OR payment_date <= $1::date)
		ORDER BY contract_id, sequence DESC
	`

	var payments []*domain.LeasePayment
	err := sqlx.SelectContext(ctx, r.db, &payments, query, asOf)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
