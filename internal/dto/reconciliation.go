package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationDelta captures one owner whose cached balances drifted from
// the entry log, with the before/after values.
type ReconciliationDelta struct {
	OwnerType           string          `json:"ownerType"`
	OwnerID             string          `json:"ownerID"`
	CachedBalance       decimal.Decimal `json:"cachedBalance"`
	ComputedBalance     decimal.Decimal `json:"computedBalance"`
	CachedLoanBalance   decimal.Decimal `json:"cachedLoanBalance"`
	ComputedLoanBalance decimal.Decimal `json:"computedLoanBalance"`
	Repaired            bool            `json:"repaired"`
}

// ReconciliationReport summarizes a full sweep of every owner's cached
// balances against the ledger truth.
type ReconciliationReport struct {
	RanAt         time.Time             `json:"ranAt"`
	CheckedOwners int                   `json:"checkedOwners"`
	DriftedOwners int                   `json:"driftedOwners"`
	Applied       bool                  `json:"applied"`
	Deltas        []ReconciliationDelta `json:"deltas"`
}
