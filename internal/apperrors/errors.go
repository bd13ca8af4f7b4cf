package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced user, group or project could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrBusinessRule is the parent of all domain-state conflicts. The specific
// rules below wrap it so callers can match either the family or the exact rule.
var ErrBusinessRule = errors.New("business rule violation")

var (
	ErrLoanLimitExceeded      = fmt.Errorf("%w: loan limit exceeded", ErrBusinessRule)
	ErrInsufficientGroupFunds = fmt.Errorf("%w: insufficient group funds", ErrBusinessRule)
	ErrOutstandingLoanExists  = fmt.Errorf("%w: outstanding loan exists", ErrBusinessRule)
	ErrNoOutstandingLoan      = fmt.Errorf("%w: no outstanding loan", ErrBusinessRule)
	ErrRepaymentExceedsLoan   = fmt.Errorf("%w: repayment exceeds outstanding loan", ErrBusinessRule)
)

// ErrLedgerWrite indicates a storage-layer atomicity failure while persisting
// a contra pair. The surrounding transaction must already be rolled back.
var ErrLedgerWrite = errors.New("ledger write failed")

// AppError wraps an underlying error with an HTTP-equivalent code and a
// human-readable message suitable for the uniform result envelope.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
