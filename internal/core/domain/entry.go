package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies the sub-ledger an entry belongs to.
type AccountType string

const (
	Savings  AccountType = "SAVINGS"
	Loan     AccountType = "LOAN"
	Cash     AccountType = "CASH"
	Fine     AccountType = "FINE"
	Interest AccountType = "INTEREST"
	Penalty  AccountType = "PENALTY"
)

// TransactionType is a coarse direction tag, redundant with the sign of
// SignedAmount but kept for reporting.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionTypeForSign derives the reporting tag from a signed amount.
func TransactionTypeForSign(signedAmount decimal.Decimal) TransactionType {
	if signedAmount.IsNegative() {
		return Expense
	}
	return Income
}

// EntrySource tags the business event that produced an entry. It is used for
// filtering and reporting only, never for balance math.
type EntrySource string

const (
	SourceSharePurchase        EntrySource = "share_purchase"
	SourceLoanDisbursement     EntrySource = "loan_disbursement"
	SourceLoanRepayment        EntrySource = "loan_repayment"
	SourceFine                 EntrySource = "fine"
	SourceProjectExpense       EntrySource = "project_expense"
	SourceReturnsDistribution  EntrySource = "returns_distribution"
	SourceProjectProfit        EntrySource = "project_profit"
)

// LedgerEntry is one side of a double-entry transaction. Entries are created
// once per operation and never mutated or deleted; every entry has exactly one
// paired counterpart referenced through ContraEntryID.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`         // Primary Key (UUID)
	ProjectID       string          `json:"projectID"`       // Savings cycle the entry belongs to
	Amount          decimal.Decimal `json:"amount"`          // Positive magnitude
	SignedAmount    decimal.Decimal `json:"signedAmount"`    // Sign encodes debit(-)/credit(+) from the owner's perspective
	Owner           Owner           `json:"owner"`           // Account this entry affects
	AccountType     AccountType     `json:"accountType"`     // Sub-ledger classification
	TransactionType TransactionType `json:"transactionType"` // INCOME or EXPENSE
	Source          EntrySource     `json:"source"`          // Business-event tag
	IsContraEntry   bool            `json:"isContraEntry"`   // True for the second-created half of a pair
	ContraEntryID   *string         `json:"contraEntryID"`   // Back-reference to the paired entry
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}
