package models

import "github.com/shopspring/decimal"

// Member mirrors the users table, including the cached balance columns.
type Member struct {
	UserID      string          `json:"userID"`
	GroupID     string          `json:"groupID"`
	Name        string          `json:"name"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`
	LoanBalance decimal.Decimal `json:"loanBalance"`
	AuditFields
}

// Group mirrors the groups table.
type Group struct {
	GroupID     string          `json:"groupID"`
	Name        string          `json:"name"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`
	LoanBalance decimal.Decimal `json:"loanBalance"`
	AuditFields
}

// Project mirrors the projects table.
type Project struct {
	ProjectID         string          `json:"projectID"`
	GroupID           string          `json:"groupID"`
	Name              string          `json:"name"`
	LoanMaxMultiplier decimal.Decimal `json:"loanMaxMultiplier"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}
