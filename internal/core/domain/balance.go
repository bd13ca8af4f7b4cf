package domain

import "github.com/shopspring/decimal"

// BalanceBreakdown is the per-owner view derived from the entry log. It is a
// pure function of the entries: recomputing it with no intervening writes
// yields an identical result.
type BalanceBreakdown struct {
	Savings     decimal.Decimal `json:"savings"`
	Loans       decimal.Decimal `json:"loans"` // Outstanding loan magnitude
	Fines       decimal.Decimal `json:"fines"` // Accumulated fine magnitude
	Cash        decimal.Decimal `json:"cash"`
	NetPosition decimal.Decimal `json:"netPosition"` // Savings less fines; loans tracked separately
}

// NewBalanceBreakdown derives the breakdown from signed sums per account
// type. Fine entries are recorded negative from the member's perspective, so
// the fine total is reported as a magnitude.
func NewBalanceBreakdown(sums map[AccountType]decimal.Decimal) BalanceBreakdown {
	b := BalanceBreakdown{
		Savings: sums[Savings],
		Loans:   sums[Loan],
		Fines:   sums[Fine].Abs(),
		Cash:    sums[Cash],
	}
	b.NetPosition = b.Savings.Sub(b.Fines)
	return b
}

// CachedBalance is the write-through projection persisted on the owning
// entity: the net non-loan position. For a group this reduces to its cash
// total, for a member to savings less fines.
func (b BalanceBreakdown) CachedBalance() decimal.Decimal {
	return b.Savings.Add(b.Cash).Sub(b.Fines)
}

// CachedLoanBalance is the outstanding loan projection.
func (b BalanceBreakdown) CachedLoanBalance() decimal.Decimal {
	return b.Loans
}
