package domain

import "github.com/shopspring/decimal"

// Group is a VSLA savings group.
type Group struct {
	GroupID     string          `json:"groupID"` // Primary Key (UUID)
	Name        string          `json:"name"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`     // Cached: group cash position
	LoanBalance decimal.Decimal `json:"loanBalance"` // Cached: outstanding loans against the group itself
	AuditFields
}
