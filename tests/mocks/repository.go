package mocks

import (
	"context"
	"time"

	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/segyhp/lease-ledger/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, contract *domain.LeaseContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id string) (*domain.LeaseContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseContract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, status string) ([]*domain.LeaseContract, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeaseContract), args.Error(1)
}

func (m *MockContractRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateTerms(ctx context.Context, contract *domain.LeaseContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.LeasePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByContractID(ctx context.Context, contractID string) ([]*domain.LeasePayment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeasePayment), args.Error(1)
}

func (m *MockPaymentRepository) CountByContractID(ctx context.Context, contractID string) (int, error) {
	args := m.Called(ctx, contractID)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) ListBetween(ctx context.Context, from, to *time.Time) ([]*domain.LeasePayment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeasePayment), args.Error(1)
}

func (m *MockPaymentRepository) GetLatestPerContract(ctx context.Context, asOf *time.Time) ([]*domain.LeasePayment, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeasePayment), args.Error(1)
}

// MockTransactor runs fn against the wrapped repositories without real locking.
// Queue errors with FailNext to make attempts fail before fn runs.
type MockTransactor struct {
	Repos    repository.Repositories
	Failures []error
	Calls    int
}

func (m *MockTransactor) FailNext(err error) {
	m.Failures = append(m.Failures, err)
}

func (m *MockTransactor) WithContractLock(ctx context.Context, contractID string, fn func(ctx context.Context, repos repository.Repositories) error) error {
	m.Calls++
	if len(m.Failures) > 0 {
		err := m.Failures[0]
		m.Failures = m.Failures[1:]
		return err
	}
	return fn(ctx, m.Repos)
}

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportCache) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockReportCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, event any) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
