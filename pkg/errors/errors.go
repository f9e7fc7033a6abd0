package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrContractNotFound        = errors.New("contract not found")
	ErrContractNotActive       = errors.New("contract is not active")
	ErrInvalidAmount           = errors.New("invalid payment amount")
	ErrInvalidDate             = errors.New("invalid date")
	ErrInvalidDateRange        = errors.New("date precedes contract start")
	ErrInvalidRent             = errors.New("invalid monthly rent")
	ErrConcurrencyConflict     = errors.New("concurrent ledger write")
	ErrContractTermsLocked     = errors.New("contract terms are locked")
	ErrInvalidStatusTransition = errors.New("invalid contract status transition")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeContractNotFound        = "CONTRACT_NOT_FOUND"
	ErrCodeContractNotActive       = "CONTRACT_NOT_ACTIVE"
	ErrCodeInvalidAmount           = "INVALID_AMOUNT"
	ErrCodeInvalidDate             = "INVALID_DATE"
	ErrCodeInvalidDateRange        = "INVALID_DATE_RANGE"
	ErrCodeInvalidRent             = "INVALID_RENT"
	ErrCodeConcurrencyConflict     = "CONCURRENCY_CONFLICT"
	ErrCodeContractTermsLocked     = "CONTRACT_TERMS_LOCKED"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeValidation              = "VALIDATION_ERROR"
	ErrCodeDatabaseError           = "DATABASE_ERROR"
	ErrCodeCacheError              = "CACHE_ERROR"
)

// CodeOf returns the business code carried by err, or "" if there is none
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Wrap common errors with business context
func WrapContractNotFound(contractID string) *BusinessError {
	return NewBusinessError(
		ErrCodeContractNotFound,
		fmt.Sprintf("Contract with ID %s not found", contractID),
		ErrContractNotFound,
	)
}

func WrapContractNotActive(contractID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeContractNotActive,
		fmt.Sprintf("Contract with ID %s is %s, payments require an active contract", contractID, status),
		ErrContractNotActive,
	)
}

func WrapInvalidAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidAmount,
	)
}

func WrapInvalidDate(field string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		fmt.Sprintf("%s must be a valid date", field),
		ErrInvalidDate,
	)
}

func WrapInvalidDateRange(date, startDate string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("Date %s is before contract start date %s", date, startDate),
		ErrInvalidDateRange,
	)
}

func WrapInvalidRent(rent string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRent,
		fmt.Sprintf("Monthly rent must be positive, got %s", rent),
		ErrInvalidRent,
	)
}

func WrapConcurrencyConflict(contractID string, err error) *BusinessError {
	if err == nil {
		err = ErrConcurrencyConflict
	} else if !errors.Is(err, ErrConcurrencyConflict) {
		err = fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
	}
	return NewBusinessError(
		ErrCodeConcurrencyConflict,
		fmt.Sprintf("Concurrent payment detected on contract %s, retry the operation", contractID),
		err,
	)
}

func WrapContractTermsLocked(contractID string) *BusinessError {
	return NewBusinessError(
		ErrCodeContractTermsLocked,
		fmt.Sprintf("Contract with ID %s already has payments, its terms can no longer change", contractID),
		ErrContractTermsLocked,
	)
}

func WrapInvalidStatusTransition(contractID, from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidStatusTransition,
		fmt.Sprintf("Contract with ID %s cannot move from %s to %s", contractID, from, to),
		ErrInvalidStatusTransition,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
