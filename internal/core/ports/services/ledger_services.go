package services

import (
	"context"

	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	"github.com/vslakit/vsla_ledger_app/internal/dto"
)

// LedgerSvcFacade exposes the four ledger operations. Every call takes an
// explicit actorUserID for audit attribution; there is no ambient actor
// fallback, system-triggered callers must pass their own identifier.
//
// Each operation runs validate -> lock -> constraint check -> contra pair ->
// cached-balance recompute inside one database transaction; on any error the
// whole transaction rolls back and no partial pair is ever visible.
type LedgerSvcFacade interface {
	RecordSaving(ctx context.Context, req dto.SavingRequest, actorUserID string) (*dto.OperationData, error)
	DisburseLoan(ctx context.Context, req dto.LoanDisbursementRequest, actorUserID string) (*dto.OperationData, error)
	RecordLoanRepayment(ctx context.Context, req dto.LoanRepaymentRequest, actorUserID string) (*dto.OperationData, error)
	RecordFine(ctx context.Context, req dto.FineRequest, actorUserID string) (*dto.OperationData, error)
}

// BalanceSvcFacade derives balances from the entry log. Results are a pure
// function of the log: two calls with no intervening writes are identical.
type BalanceSvcFacade interface {
	// GetBalances computes the breakdown for an owner, optionally scoped to a
	// project (savings cycle).
	GetBalances(ctx context.Context, owner domain.Owner, projectID *string) (*domain.BalanceBreakdown, error)

	// ListEntries returns a keyset-paginated page of the owner's entries,
	// newest first.
	ListEntries(ctx context.Context, owner domain.Owner, limit int, nextToken *string) (*dto.ListEntriesResponse, error)

	// Reconcile sweeps every member and group, recomputes cached balances
	// from the entry log, and reports drift. With apply set, drifted caches
	// are repaired in place; entries are never rewritten. The actor is
	// required for audit attribution even on system-triggered runs.
	Reconcile(ctx context.Context, apply bool, actorUserID string) (*dto.ReconciliationReport, error)
}

// ServiceContainer holds instances of all application services and is the
// entry point for handlers and the reconciliation CLI.
type ServiceContainer struct {
	Ledger  LedgerSvcFacade
	Balance BalanceSvcFacade
}
