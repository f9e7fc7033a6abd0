package handler

import (
	"net/http"

	customError "github.com/segyhp/lease-ledger/pkg/errors"
	"github.com/segyhp/lease-ledger/pkg/response"

	"github.com/gorilla/mux"
)

// Summary handles GET /api/v1/reports/summary?from=&to=
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if from != nil && to != nil && to.Before(*from) {
		h.writeError(w, r, customError.NewBusinessError(customError.ErrCodeInvalidDateRange, "to must not be before from", customError.ErrInvalidDateRange))
		return
	}

	summary, err := h.reports.Summary(r.Context(), from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, summary)
}

// Arrears handles GET /api/v1/reports/arrears?as_of=
func (h *LedgerHandler) Arrears(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "as_of")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	arrears, err := h.reports.Arrears(r.Context(), asOf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, arrears)
}

func (h *LedgerHandler) Statement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.reports.Statement(r.Context(), mux.Vars(r)["contractId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, statement)
}
