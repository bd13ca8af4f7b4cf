package dto

import (
	"errors"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
)

// OperationResult is the uniform envelope every ledger operation resolves to.
// Callers branch on Success, never on error types; failed operations carry a
// human-readable message and a nil Data.
type OperationResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *OperationData `json:"data"`
}

// NewOperationResult folds a service outcome into the envelope. Internal
// error detail stays in the logs; the caller only ever sees the message.
func NewOperationResult(data *OperationData, err error) OperationResult {
	if err != nil {
		return OperationResult{Success: false, Message: messageFor(err), Data: nil}
	}
	return OperationResult{Success: true, Message: "transaction recorded", Data: data}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrLoanLimitExceeded):
		return "loan amount exceeds the member's loan ceiling"
	case errors.Is(err, apperrors.ErrInsufficientGroupFunds):
		return "group does not have enough cash to cover this amount"
	case errors.Is(err, apperrors.ErrOutstandingLoanExists):
		return "member already has an outstanding loan"
	case errors.Is(err, apperrors.ErrNoOutstandingLoan):
		return "member has no outstanding loan to repay"
	case errors.Is(err, apperrors.ErrRepaymentExceedsLoan):
		return "repayment amount exceeds the outstanding loan"
	case errors.Is(err, apperrors.ErrValidation):
		return "invalid request: " + err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return "referenced user, group or project was not found"
	case errors.Is(err, apperrors.ErrLedgerWrite):
		return "transaction could not be recorded, no changes were made"
	default:
		return "transaction could not be recorded"
	}
}
