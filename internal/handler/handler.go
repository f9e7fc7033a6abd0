package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/segyhp/lease-ledger/internal/domain"
	customError "github.com/segyhp/lease-ledger/pkg/errors"
	"github.com/segyhp/lease-ledger/pkg/response"
	"github.com/segyhp/lease-ledger/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ContractManager is the contract administration surface the handler needs
type ContractManager interface {
	CreateContract(ctx context.Context, request *domain.CreateContractRequest) (*domain.LeaseContract, error)
	GetContract(ctx context.Context, contractID string) (*domain.LeaseContract, error)
	ListContracts(ctx context.Context, status string) ([]*domain.LeaseContract, error)
	ActivateContract(ctx context.Context, contractID string) (*domain.LeaseContract, error)
	TerminateContract(ctx context.Context, contractID string) (*domain.LeaseContract, error)
	UpdateTerms(ctx context.Context, contractID string, request *domain.UpdateTermsRequest) (*domain.LeaseContract, error)
}

// PaymentLedger records and previews lease payments
type PaymentLedger interface {
	RecordPayment(ctx context.Context, cmd domain.RecordPaymentCommand) (*domain.LeasePayment, error)
	GetOutstanding(ctx context.Context, contractID string, asOf time.Time) (*domain.OutstandingResponse, error)
	ListPayments(ctx context.Context, contractID string) ([]*domain.LeasePayment, error)
}

// ReportReader serves aggregate views over recorded payments
type ReportReader interface {
	Summary(ctx context.Context, from, to *time.Time) (*domain.ReportSummary, error)
	Arrears(ctx context.Context, asOf *time.Time) (*domain.ArrearsResponse, error)
	Statement(ctx context.Context, contractID string) (*domain.ContractStatement, error)
}

type LedgerHandler struct {
	contracts ContractManager
	payments  PaymentLedger
	reports   ReportReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewLedgerHandler(contracts ContractManager, payments PaymentLedger, reports ReportReader, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		contracts: contracts,
		payments:  payments,
		reports:   reports,
		validator: NewValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// NewValidator returns a validator that understands decimal.Decimal fields
// through the decimal_gt tag
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("decimal_gt", func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return value.GreaterThan(bound)
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *LedgerHandler) decode(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return customError.NewBusinessError(customError.ErrCodeValidation, "invalid request body", err)
	}
	if err := h.validator.Struct(dest); err != nil {
		return customError.NewBusinessError(customError.ErrCodeValidation, validationMessage(err), err)
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return "validation failed"
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fe.Field()+" failed on "+fe.Tag())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return nil, customError.WrapInvalidDate(name)
	}
	return &d, nil
}

// statusFor maps an error code onto the HTTP status returned to clients
func statusFor(code string) int {
	switch code {
	case customError.ErrCodeContractNotFound:
		return http.StatusNotFound
	case customError.ErrCodeContractNotActive,
		customError.ErrCodeConcurrencyConflict,
		customError.ErrCodeContractTermsLocked,
		customError.ErrCodeInvalidStatusTransition:
		return http.StatusConflict
	case customError.ErrCodeInvalidAmount,
		customError.ErrCodeInvalidDate,
		customError.ErrCodeInvalidDateRange,
		customError.ErrCodeInvalidRent,
		customError.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *LedgerHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := customError.CodeOf(err)
	message := err.Error()
	var be *customError.BusinessError
	if errors.As(err, &be) {
		message = be.Message
	}

	switch statusFor(code) {
	case http.StatusNotFound:
		response.NotFound(w, code, message)
	case http.StatusConflict:
		response.Conflict(w, code, message)
	case http.StatusBadRequest:
		response.BadRequest(w, code, message)
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		response.InternalServerError(w, code)
	}
}
