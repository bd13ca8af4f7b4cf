package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the persistence model for one row of ledger_entries. The
// polymorphic owner is stored as a flat (owner_type, owner_id) pair; the
// domain layer folds it back into the tagged Owner variant.
type LedgerEntry struct {
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
	AuditFields
}
