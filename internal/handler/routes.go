package handler

import (
	"net/http"

	"github.com/segyhp/lease-ledger/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires every HTTP route of the ledger API
func NewRouter(ledgerHandler *LedgerHandler, healthHandler *HealthHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.JSONMiddleware)

	api.HandleFunc("/contracts", ledgerHandler.CreateContract).Methods(http.MethodPost)
	api.HandleFunc("/contracts", ledgerHandler.ListContracts).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}", ledgerHandler.GetContract).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}/terms", ledgerHandler.UpdateTerms).Methods(http.MethodPatch)
	api.HandleFunc("/contracts/{contractId}/activate", ledgerHandler.ActivateContract).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{contractId}/terminate", ledgerHandler.TerminateContract).Methods(http.MethodPost)

	api.HandleFunc("/contracts/{contractId}/payments", ledgerHandler.RecordPayment).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{contractId}/payments", ledgerHandler.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}/outstanding", ledgerHandler.GetOutstanding).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{contractId}/statement", ledgerHandler.Statement).Methods(http.MethodGet)

	api.HandleFunc("/reports/summary", ledgerHandler.Summary).Methods(http.MethodGet)
	api.HandleFunc("/reports/arrears", ledgerHandler.Arrears).Methods(http.MethodGet)

	return router
}
