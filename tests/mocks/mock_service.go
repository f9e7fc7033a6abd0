package mocks

import (
	"context"
	"time"

	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) CreateContract(ctx context.Context, request *domain.CreateContractRequest) (*domain.LeaseContract, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseContract), args.Error(1)
}

func (m *MockContractService) GetContract(ctx context.Context, contractID string) (*domain.LeaseContract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseContract), args.Error(1)
}

func (m *MockContractService) ListContracts(ctx context.Context, status string) ([]*domain.LeaseContract, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeaseContract), args.Error(1)
}

func (m *MockContractService) ActivateContract(ctx context.Context, contractID string) (*domain.LeaseContract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseContract), args.Error(1)
}

func (m *MockContractService) TerminateContract(ctx context.Context, contractID string) (*domain.LeaseContract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseContract), args.Error(1)
}

func (m *MockContractService) UpdateTerms(ctx context.Context, contractID string, request *domain.UpdateTermsRequest) (*domain.LeaseContract, error) {
	args := m.Called(ctx, contractID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseContract), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordPayment(ctx context.Context, cmd domain.RecordPaymentCommand) (*domain.LeasePayment, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasePayment), args.Error(1)
}

func (m *MockLedgerService) GetOutstanding(ctx context.Context, contractID string, asOf time.Time) (*domain.OutstandingResponse, error) {
	args := m.Called(ctx, contractID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OutstandingResponse), args.Error(1)
}

func (m *MockLedgerService) ListPayments(ctx context.Context, contractID string) ([]*domain.LeasePayment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeasePayment), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summary(ctx context.Context, from, to *time.Time) (*domain.ReportSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSummary), args.Error(1)
}

func (m *MockReportService) Arrears(ctx context.Context, asOf *time.Time) (*domain.ArrearsResponse, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArrearsResponse), args.Error(1)
}

func (m *MockReportService) Statement(ctx context.Context, contractID string) (*domain.ContractStatement, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractStatement), args.Error(1)
}
