package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/segyhp/lease-ledger/internal/app"
	"github.com/segyhp/lease-ledger/internal/config"
	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/segyhp/lease-ledger/internal/handler"
	customError "github.com/segyhp/lease-ledger/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLedgerRouter(t *testing.T) *mux.Router {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.StorageDriverMemory},
		Ledger:   config.LedgerConfig{PenaltyRate: "0.05", MaxRetries: 3},
	}
	ledger, err := app.New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(ledger.Close)

	ledgerHandler := handler.NewLedgerHandler(ledger.ContractService, ledger.LedgerService, ledger.ReportService, zap.NewNop())
	healthHandler := handler.NewHealthHandler(ledger.DB, ledger.Redis, time.Second)
	return handler.NewRouter(ledgerHandler, healthHandler, zap.NewNop())
}

func createActiveContract(t *testing.T, router http.Handler, start string, rent string) string {
	t.Helper()
	w, env := do(t, router, http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"tenant_id":    "tenant-1",
		"property_id":  "property-1",
		"start_date":   start,
		"monthly_rent": rent,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var contract domain.LeaseContract
	require.NoError(t, json.Unmarshal(env.Data, &contract))

	w, _ = do(t, router, http.MethodPost, "/api/v1/contracts/"+contract.ID+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return contract.ID
}

func recordPayment(t *testing.T, router http.Handler, contractID, amount, date string) (int, envelope) {
	t.Helper()
	w, env := do(t, router, http.MethodPost, "/api/v1/contracts/"+contractID+"/payments", map[string]interface{}{
		"amount":       amount,
		"payment_date": date,
	})
	return w.Code, env
}

func TestRouter_LedgerFlow(t *testing.T) {
	router := newLedgerRouter(t)
	contractID := createActiveContract(t, router, "2024-01-01", "300")

	status, env := recordPayment(t, router, contractID, "300", "2024-01-01")
	require.Equal(t, http.StatusCreated, status)
	var first domain.LeasePayment
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.True(t, first.RemainingBalance.Equal(decimal.Zero))

	status, env = recordPayment(t, router, contractID, "200", "2024-03-15")
	require.Equal(t, http.StatusCreated, status)
	var second domain.LeasePayment
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, 2, second.Sequence)
	assert.True(t, second.RemainingBalance.Equal(decimal.NewFromInt(400)), "Expected 400, but got %v", second.RemainingBalance)

	w, env := do(t, router, http.MethodGet, "/api/v1/contracts/"+contractID+"/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payments []*domain.LeasePayment
	require.NoError(t, json.Unmarshal(env.Data, &payments))
	assert.Len(t, payments, 2)

	w, env = do(t, router, http.MethodGet, "/api/v1/contracts/"+contractID+"/outstanding?as_of=2024-03-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var preview domain.OutstandingResponse
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.True(t, preview.Outstanding.Equal(decimal.NewFromInt(400)))

	w, env = do(t, router, http.MethodGet, "/api/v1/contracts/"+contractID+"/statement", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var statement domain.ContractStatement
	require.NoError(t, json.Unmarshal(env.Data, &statement))
	assert.True(t, statement.TotalPaid.Equal(decimal.NewFromInt(500)))

	w, env = do(t, router, http.MethodGet, "/api/v1/reports/arrears", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var arrears domain.ArrearsResponse
	require.NoError(t, json.Unmarshal(env.Data, &arrears))
	require.Len(t, arrears.Entries, 1)
	assert.Equal(t, contractID, arrears.Entries[0].ContractID)

	w, env = do(t, router, http.MethodGet, "/api/v1/reports/summary?from=2024-01-01&to=2024-12-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary domain.ReportSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.PaymentCount)
	assert.True(t, summary.TotalCollected.Equal(decimal.NewFromInt(500)))

	// Terms are frozen once payments exist.
	w, env = do(t, router, http.MethodPatch, "/api/v1/contracts/"+contractID+"/terms", map[string]interface{}{"monthly_rent": "350"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, customError.ErrCodeContractTermsLocked, env.Code)
}

func TestRouter_RejectsPaymentsOnInactiveContracts(t *testing.T) {
	router := newLedgerRouter(t)

	w, env := do(t, router, http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"tenant_id":    "tenant-1",
		"property_id":  "property-1",
		"start_date":   "2024-01-01",
		"monthly_rent": "300",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var contract domain.LeaseContract
	require.NoError(t, json.Unmarshal(env.Data, &contract))

	status, env := recordPayment(t, router, contract.ID, "300", "2024-01-01")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, customError.ErrCodeContractNotActive, env.Code)

	status, env = recordPayment(t, router, "missing", "300", "2024-01-01")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, customError.ErrCodeContractNotFound, env.Code)

	w, env = do(t, router, http.MethodGet, "/api/v1/contracts/"+contract.ID+"/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestRouter_ConcurrentPayments(t *testing.T) {
	router := newLedgerRouter(t)
	contractID := createActiveContract(t, router, "2024-01-01", "300")

	const writers = 6
	var wg sync.WaitGroup
	statuses := make([]int, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := strings.NewReader(`{"amount":"50","payment_date":"2024-01-01"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/"+contractID+"/payments", body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			statuses[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, status := range statuses {
		assert.Equal(t, http.StatusCreated, status, "writer %d", i)
	}

	w, env := do(t, router, http.MethodGet, "/api/v1/contracts/"+contractID+"/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payments []*domain.LeasePayment
	require.NoError(t, json.Unmarshal(env.Data, &payments))
	require.Len(t, payments, writers)

	balances := make(map[string]bool)
	for _, p := range payments {
		balances[p.RemainingBalance.String()] = true
	}
	for n := 1; n <= writers; n++ {
		expected := decimal.NewFromInt(int64(300 - 50*n)).String()
		assert.True(t, balances[expected], "missing remaining balance %s", expected)
	}
}
