package domain

import "github.com/shopspring/decimal"

// DefaultLoanMaxMultiplier caps a member's loan at three times their savings
// unless the project overrides it.
var DefaultLoanMaxMultiplier = decimal.NewFromInt(3)

// Project is a savings cycle: a bounded period during which a group collects
// savings and issues loans. GroupID may be empty for cycles not tied to a
// single group, in which case the member's own group scopes the operation.
type Project struct {
	ProjectID         string          `json:"projectID"` // Primary Key (UUID)
	GroupID           string          `json:"groupID"`   // Nullable FK -> groups.group_id
	Name              string          `json:"name"`
	LoanMaxMultiplier decimal.Decimal `json:"loanMaxMultiplier"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}
