package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/segyhp/lease-ledger/internal/repository"
	customError "github.com/segyhp/lease-ledger/pkg/errors"
	"github.com/segyhp/lease-ledger/pkg/utils"

	"go.uber.org/zap"
)

// ContractService administers lease contracts: creation, lifecycle moves and
// term edits. Payments are recorded by LedgerService.
type ContractService struct {
	ContractRepo repository.ContractRepository
	tx           repository.Transactor
	logger       *zap.Logger
	now          func() time.Time
}

func NewContractService(contractRepo repository.ContractRepository, tx repository.Transactor, logger *zap.Logger) *ContractService {
	return &ContractService{
		ContractRepo: contractRepo,
		tx:           tx,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateContract registers a new PENDING contract
func (s *ContractService) CreateContract(ctx context.Context, request *domain.CreateContractRequest) (*domain.LeaseContract, error) {
	startDate, err := utils.ParseDate(request.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidDate("start_date")
	}
	if !request.MonthlyRent.IsPositive() {
		return nil, customError.WrapInvalidRent(request.MonthlyRent.String())
	}

	now := s.now()
	contract := &domain.LeaseContract{
		ID:          uuid.New().String(),
		TenantID:    request.TenantID,
		PropertyID:  request.PropertyID,
		StartDate:   startDate,
		MonthlyRent: request.MonthlyRent,
		Status:      domain.ContractStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ContractRepo.Create(ctx, contract); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("lease contract created",
		zap.String("contract_id", contract.ID),
		zap.String("tenant_id", contract.TenantID),
		zap.String("property_id", contract.PropertyID),
	)
	return contract, nil
}

// GetContract returns a single contract
func (s *ContractService) GetContract(ctx context.Context, contractID string) (*domain.LeaseContract, error) {
	contract, err := s.ContractRepo.GetByID(ctx, contractID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapContractNotFound(contractID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return contract, nil
}

// ListContracts returns contracts, optionally filtered by status
func (s *ContractService) ListContracts(ctx context.Context, status string) ([]*domain.LeaseContract, error) {
	if status != "" && !domain.IsValidContractStatus(status) {
		return nil, customError.NewBusinessError(customError.ErrCodeValidation, fmt.Sprintf("unknown contract status %q", status), nil)
	}

	contracts, err := s.ContractRepo.List(ctx, status)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if contracts == nil {
		contracts = []*domain.LeaseContract{}
	}
	return contracts, nil
}

// ActivateContract moves a PENDING contract to ACTIVE
func (s *ContractService) ActivateContract(ctx context.Context, contractID string) (*domain.LeaseContract, error) {
	return s.transition(ctx, contractID, domain.ContractStatusActive)
}

// TerminateContract ends a PENDING or ACTIVE contract
func (s *ContractService) TerminateContract(ctx context.Context, contractID string) (*domain.LeaseContract, error) {
	return s.transition(ctx, contractID, domain.ContractStatusTerminated)
}

func (s *ContractService) transition(ctx context.Context, contractID, status string) (*domain.LeaseContract, error) {
	var updated *domain.LeaseContract

	err := s.tx.WithContractLock(ctx, contractID, func(ctx context.Context, repos repository.Repositories) error {
		contract, err := repos.Contracts.GetByID(ctx, contractID)
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapContractNotFound(contractID)
		}
		if err != nil {
			return err
		}
		if !contract.CanTransitionTo(status) {
			return customError.WrapInvalidStatusTransition(contractID, contract.Status, status)
		}
		if err := repos.Contracts.UpdateStatus(ctx, contractID, status); err != nil {
			return err
		}

		contract.Status = status
		updated = contract
		return nil
	})
	if err != nil {
		return nil, classifyError(contractID, err)
	}

	s.logger.Info("lease contract status changed",
		zap.String("contract_id", contractID),
		zap.String("status", status),
	)
	return updated, nil
}

// UpdateTerms edits start date and/or monthly rent. Once a payment exists the
// stored balance snapshots depend on these terms, so edits are rejected.
func (s *ContractService) UpdateTerms(ctx context.Context, contractID string, request *domain.UpdateTermsRequest) (*domain.LeaseContract, error) {
	var updated *domain.LeaseContract

	err := s.tx.WithContractLock(ctx, contractID, func(ctx context.Context, repos repository.Repositories) error {
		contract, err := repos.Contracts.GetByID(ctx, contractID)
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapContractNotFound(contractID)
		}
		if err != nil {
			return err
		}

		count, err := repos.Payments.CountByContractID(ctx, contractID)
		if err != nil {
			return err
		}
		if count > 0 {
			return customError.WrapContractTermsLocked(contractID)
		}

		if request.StartDate != nil {
			startDate, err := utils.ParseDate(*request.StartDate)
			if err != nil {
				return customError.WrapInvalidDate("start_date")
			}
			contract.StartDate = startDate
		}
		if request.MonthlyRent != nil {
			if !request.MonthlyRent.IsPositive() {
				return customError.WrapInvalidRent(request.MonthlyRent.String())
			}
			contract.MonthlyRent = *request.MonthlyRent
		}

		if err := repos.Contracts.UpdateTerms(ctx, contract); err != nil {
			return err
		}
		updated = contract
		return nil
	})
	if err != nil {
		return nil, classifyError(contractID, err)
	}

	return updated, nil
}
