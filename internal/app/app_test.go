package app

import (
	"context"
	"testing"
	"time"

	"github.com/segyhp/lease-ledger/internal/config"
	"github.com/segyhp/lease-ledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.StorageDriverMemory},
		Ledger:   config.LedgerConfig{PenaltyRate: "0.05", MaxRetries: 3},
	}
}

func TestNew_MemoryDriver(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Nil(t, a.Redis)

	ctx := context.Background()
	contract, err := a.ContractService.CreateContract(ctx, &domain.CreateContractRequest{
		TenantID:    "tenant-1",
		PropertyID:  "property-1",
		StartDate:   "2024-01-01",
		MonthlyRent: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	_, err = a.ContractService.ActivateContract(ctx, contract.ID)
	require.NoError(t, err)

	payment, err := a.LedgerService.RecordPayment(ctx, domain.RecordPaymentCommand{
		ContractID:  contract.ID,
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, payment.RemainingBalance.Equal(decimal.NewFromInt(200)))

	summary, err := a.ReportService.Summary(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ContractsInArrears)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.Driver = "sqlite"

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
