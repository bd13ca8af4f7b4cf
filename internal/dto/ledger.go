package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
)

// SavingRequest records a member's share purchase into group savings.
type SavingRequest struct {
	UserID          string          `json:"userID" binding:"required"`
	ProjectID       string          `json:"projectID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description     string          `json:"description"`
	TransactionDate *time.Time      `json:"transactionDate"`
}

// LoanDisbursementRequest issues a loan to a member out of group cash. The
// interest rate is recorded in the entry description only; no amortization
// schedule is computed here.
type LoanDisbursementRequest struct {
	UserID          string           `json:"userID" binding:"required"`
	ProjectID       string           `json:"projectID" binding:"required"`
	Amount          decimal.Decimal  `json:"amount" binding:"required,gt=0"`
	InterestRate    *decimal.Decimal `json:"interestRate"`
	Description     string           `json:"description"`
	TransactionDate *time.Time       `json:"transactionDate"`
}

// LoanRepaymentRequest pays down a member's outstanding loan.
type LoanRepaymentRequest struct {
	UserID          string          `json:"userID" binding:"required"`
	ProjectID       string          `json:"projectID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description     string          `json:"description"`
	TransactionDate *time.Time      `json:"transactionDate"`
}

// FineRequest records a fine against a member. The description carries the
// reason and is mandatory.
type FineRequest struct {
	UserID          string          `json:"userID" binding:"required"`
	ProjectID       string          `json:"projectID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description     string          `json:"description" binding:"required"`
	TransactionDate *time.Time      `json:"transactionDate"`
}

// EntryResponse is the outward shape of a ledger entry.
type EntryResponse struct {
	EntryID         string          `json:"entryID"`
	ProjectID       string          `json:"projectID"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signedAmount"`
	OwnerType       string          `json:"ownerType"`
	OwnerID         string          `json:"ownerID"`
	AccountType     string          `json:"accountType"`
	TransactionType string          `json:"transactionType"`
	Source          string          `json:"source"`
	IsContraEntry   bool            `json:"isContraEntry"`
	ContraEntryID   *string         `json:"contraEntryID"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToEntryResponse converts a domain entry to its response form.
func ToEntryResponse(e domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		ProjectID:       e.ProjectID,
		Amount:          e.Amount,
		SignedAmount:    e.SignedAmount,
		OwnerType:       string(e.Owner.Type),
		OwnerID:         e.Owner.ID,
		AccountType:     string(e.AccountType),
		TransactionType: string(e.TransactionType),
		Source:          string(e.Source),
		IsContraEntry:   e.IsContraEntry,
		ContraEntryID:   e.ContraEntryID,
		Description:     e.Description,
		TransactionDate: e.TransactionDate,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out
}

// OperationData is the success payload of a ledger operation: the two
// persisted entries plus the fresh balance breakdowns of both parties.
type OperationData struct {
	UserTransaction  EntryResponse           `json:"userTransaction"`
	GroupTransaction EntryResponse           `json:"groupTransaction"`
	UserBalances     domain.BalanceBreakdown `json:"userBalances"`
	GroupBalances    domain.BalanceBreakdown `json:"groupBalances"`
}

// BalancesResponse is the payload of a standalone balance read.
type BalancesResponse struct {
	OwnerType string                  `json:"ownerType"`
	OwnerID   string                  `json:"ownerID"`
	ProjectID *string                 `json:"projectID,omitempty"`
	Balances  domain.BalanceBreakdown `json:"balances"`
}

// ListEntriesResponse is a page of entries plus the cursor for the next one.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
