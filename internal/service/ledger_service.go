package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/lease-ledger/internal/cache"
	"github.com/segyhp/lease-ledger/internal/config"
	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/segyhp/lease-ledger/internal/events"
	"github.com/segyhp/lease-ledger/internal/ledger"
	"github.com/segyhp/lease-ledger/internal/repository"
	customError "github.com/segyhp/lease-ledger/pkg/errors"
	"github.com/segyhp/lease-ledger/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const afterCommitTimeout = 5 * time.Second

// LedgerService records lease payments and previews what a contract owes
type LedgerService struct {
	ContractRepo repository.ContractRepository
	PaymentRepo  repository.PaymentRepository
	tx           repository.Transactor
	cache        cache.ReportCache
	publisher    events.Publisher
	logger       *zap.Logger
	penaltyRate  decimal.Decimal
	maxRetries   int
	now          func() time.Time
}

func NewLedgerService(
	contractRepo repository.ContractRepository,
	paymentRepo repository.PaymentRepository,
	tx repository.Transactor,
	reportCache cache.ReportCache,
	publisher events.Publisher,
	config *config.Config,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		ContractRepo: contractRepo,
		PaymentRepo:  paymentRepo,
		tx:           tx,
		cache:        reportCache,
		publisher:    publisher,
		logger:       logger,
		penaltyRate:  config.GetPenaltyRate(),
		maxRetries:   config.Ledger.MaxRetries,
		now:          time.Now,
	}
}

// RecordPayment appends a payment to an active contract's ledger. The remaining
// balance and penalty are computed here from the full payment history, with the
// history locked so concurrent payments see each other.
func (s *LedgerService) RecordPayment(ctx context.Context, cmd domain.RecordPaymentCommand) (*domain.LeasePayment, error) {
	if !cmd.Amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(cmd.Amount.String())
	}
	if cmd.PaymentDate.IsZero() {
		return nil, customError.WrapInvalidDate("payment_date")
	}
	if cmd.ExchangeRate.Valid && !cmd.ExchangeRate.Decimal.IsPositive() {
		return nil, customError.NewBusinessError(customError.ErrCodeValidation, "exchange_rate must be positive", nil)
	}
	cmd.PaymentDate = utils.TruncateToDate(cmd.PaymentDate)

	var (
		payment *domain.LeasePayment
		err     error
	)
	for attempt := 0; ; attempt++ {
		payment, err = s.recordOnce(ctx, cmd)
		if err == nil || !errors.Is(err, customError.ErrConcurrencyConflict) || attempt >= s.maxRetries {
			break
		}
		s.logger.Warn("concurrent payment detected, retrying",
			zap.String("contract_id", cmd.ContractID),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("lease payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("contract_id", payment.ContractID),
		zap.Int("sequence", payment.Sequence),
		zap.String("amount", payment.Amount.String()),
		zap.String("remaining_balance", payment.RemainingBalance.String()),
		zap.String("penalty", payment.Penalty.String()),
	)
	s.afterCommit(ctx, payment)

	return payment, nil
}

func (s *LedgerService) recordOnce(ctx context.Context, cmd domain.RecordPaymentCommand) (*domain.LeasePayment, error) {
	var payment *domain.LeasePayment

	err := s.tx.WithContractLock(ctx, cmd.ContractID, func(ctx context.Context, repos repository.Repositories) error {
		contract, err := repos.Contracts.GetByID(ctx, cmd.ContractID)
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapContractNotFound(cmd.ContractID)
		}
		if err != nil {
			return err
		}
		if !contract.IsActive() {
			return customError.WrapContractNotActive(contract.ID, contract.Status)
		}

		prior, err := repos.Payments.GetByContractID(ctx, contract.ID)
		if err != nil {
			return err
		}

		due, err := ledger.CalculateDue(contract.StartDate, cmd.PaymentDate, contract.MonthlyRent)
		if err != nil {
			return err
		}
		outstanding := ledger.OutstandingBefore(due.TotalDue, paymentAmounts(prior))
		penalty := ledger.CalculatePenalty(contract.StartDate, contract.MonthlyRent, due.ElapsedPeriods, cmd.PaymentDate, s.penaltyRate)

		payment = &domain.LeasePayment{
			ID:               uuid.New().String(),
			ContractID:       contract.ID,
			Sequence:         len(prior) + 1,
			Amount:           cmd.Amount,
			PaymentDate:      cmd.PaymentDate,
			RemainingBalance: ledger.RemainingBalance(outstanding, cmd.Amount),
			Penalty:          penalty.Amount,
			ExchangeRate:     cmd.ExchangeRate,
			CreatedAt:        s.now(),
		}
		return repos.Payments.Create(ctx, payment)
	})
	if err != nil {
		return nil, classifyError(cmd.ContractID, err)
	}

	return payment, nil
}

// afterCommit runs side effects that must not undo a committed payment
func (s *LedgerService) afterCommit(ctx context.Context, payment *domain.LeasePayment) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
	defer cancel()

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Error(customError.WrapCacheError(err)))
	}

	event := events.PaymentRecorded{
		EventID:          uuid.New().String(),
		EventType:        events.EventTypePaymentRecorded,
		PaymentID:        payment.ID,
		ContractID:       payment.ContractID,
		Sequence:         payment.Sequence,
		Amount:           payment.Amount,
		PaymentDate:      utils.FormatDate(payment.PaymentDate),
		RemainingBalance: payment.RemainingBalance,
		Penalty:          payment.Penalty,
		ExchangeRate:     payment.ExchangeRate,
		OccurredAt:       payment.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, payment.ContractID, event); err != nil {
		s.logger.Error("publishing payment event failed",
			zap.String("payment_id", payment.ID),
			zap.Error(err),
		)
	}
}

// GetOutstanding previews what a contract owes on asOf without writing anything
func (s *LedgerService) GetOutstanding(ctx context.Context, contractID string, asOf time.Time) (*domain.OutstandingResponse, error) {
	if asOf.IsZero() {
		return nil, customError.WrapInvalidDate("as_of")
	}
	asOf = utils.TruncateToDate(asOf)

	contract, err := s.getContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	due, err := ledger.CalculateDue(contract.StartDate, asOf, contract.MonthlyRent)
	if err != nil {
		return nil, err
	}
	amounts := paymentAmounts(payments)
	penalty := ledger.CalculatePenalty(contract.StartDate, contract.MonthlyRent, due.ElapsedPeriods, asOf, s.penaltyRate)

	return &domain.OutstandingResponse{
		ContractID:     contract.ID,
		AsOf:           asOf,
		ElapsedDays:    due.ElapsedDays,
		ElapsedPeriods: due.ElapsedPeriods,
		TotalDue:       due.TotalDue,
		TotalPaid:      utils.SumDecimals(amounts),
		Outstanding:    ledger.OutstandingBefore(due.TotalDue, amounts),
		DueDate:        penalty.DueDate,
		LateDays:       penalty.LateDays,
		LatePeriods:    penalty.LatePeriods,
		Penalty:        penalty.Amount,
	}, nil
}

// ListPayments returns a contract's payments ordered by payment date, then ID
func (s *LedgerService) ListPayments(ctx context.Context, contractID string) ([]*domain.LeasePayment, error) {
	if _, err := s.getContract(ctx, contractID); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if payments == nil {
		payments = []*domain.LeasePayment{}
	}
	return payments, nil
}

func (s *LedgerService) getContract(ctx context.Context, contractID string) (*domain.LeaseContract, error) {
	contract, err := s.ContractRepo.GetByID(ctx, contractID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapContractNotFound(contractID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return contract, nil
}

func paymentAmounts(payments []*domain.LeasePayment) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
	}
	return amounts
}

// classifyError keeps business errors as they are and wraps infrastructure failures
func classifyError(contractID string, err error) error {
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	if errors.Is(err, customError.ErrConcurrencyConflict) {
		return customError.WrapConcurrencyConflict(contractID, err)
	}
	return customError.WrapDatabaseError(err)
}
