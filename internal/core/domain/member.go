package domain

import "github.com/shopspring/decimal"

// Member is a VSLA group member. The ledger only consumes member IDs from the
// registry; Balance and LoanBalance are write-through caches recomputed from
// the entry log inside each ledger transaction, never the source of truth.
type Member struct {
	UserID      string          `json:"userID"`  // Primary Key (UUID)
	GroupID     string          `json:"groupID"` // FK -> groups.group_id
	Name        string          `json:"name"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`     // Cached: savings less fines
	LoanBalance decimal.Decimal `json:"loanBalance"` // Cached: outstanding loan
	AuditFields
}
