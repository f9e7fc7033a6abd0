package handler

import (
	"net/http"

	"github.com/segyhp/lease-ledger/internal/domain"
	customError "github.com/segyhp/lease-ledger/pkg/errors"
	"github.com/segyhp/lease-ledger/pkg/response"
	"github.com/segyhp/lease-ledger/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// RecordPayment handles POST /api/v1/contracts/{contractId}/payments.
// The balance snapshot is computed server-side; clients send only amount and date.
func (h *LedgerHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var request domain.RecordPaymentRequest
	if err := h.decode(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	paymentDate, err := utils.ParseDate(request.PaymentDate)
	if err != nil {
		h.writeError(w, r, customError.WrapInvalidDate("payment_date"))
		return
	}

	cmd := domain.RecordPaymentCommand{
		ContractID:  mux.Vars(r)["contractId"],
		Amount:      request.Amount,
		PaymentDate: paymentDate,
	}
	if request.ExchangeRate != nil {
		cmd.ExchangeRate = decimal.NewNullDecimal(*request.ExchangeRate)
	}

	payment, err := h.payments.RecordPayment(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, payment)
}

func (h *LedgerHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListPayments(r.Context(), mux.Vars(r)["contractId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, payments)
}

// GetOutstanding handles GET /api/v1/contracts/{contractId}/outstanding?as_of=.
// as_of defaults to today.
func (h *LedgerHandler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "as_of")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if asOf == nil {
		today := utils.TruncateToDate(h.now())
		asOf = &today
	}

	preview, err := h.payments.GetOutstanding(r.Context(), mux.Vars(r)["contractId"], *asOf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, preview)
}
