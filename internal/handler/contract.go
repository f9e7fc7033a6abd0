package handler

import (
	"net/http"

	"github.com/segyhp/lease-ledger/internal/domain"
	"github.com/segyhp/lease-ledger/pkg/response"

	"github.com/gorilla/mux"
)

// CreateContract handles POST /api/v1/contracts
func (h *LedgerHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateContractRequest
	if err := h.decode(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	contract, err := h.contracts.CreateContract(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, contract)
}

// ListContracts handles GET /api/v1/contracts?status=
func (h *LedgerHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.contracts.ListContracts(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, contracts)
}

func (h *LedgerHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.contracts.GetContract(r.Context(), mux.Vars(r)["contractId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, contract)
}

func (h *LedgerHandler) ActivateContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.contracts.ActivateContract(r.Context(), mux.Vars(r)["contractId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, contract)
}

func (h *LedgerHandler) TerminateContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.contracts.TerminateContract(r.Context(), mux.Vars(r)["contractId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, contract)
}

// UpdateTerms handles PATCH /api/v1/contracts/{contractId}/terms
func (h *LedgerHandler) UpdateTerms(w http.ResponseWriter, r *http.Request) {
	var request domain.UpdateTermsRequest
	if err := h.decode(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	contract, err := h.contracts.UpdateTerms(r.Context(), mux.Vars(r)["contractId"], &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, contract)
}
