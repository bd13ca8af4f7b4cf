package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
)

// MemberReader defines read operations for member reference data.
type MemberReader interface {
	// FindMemberByID retrieves a member by their unique identifier.
	FindMemberByID(ctx context.Context, userID string) (*domain.Member, error)

	// ListMemberIDs returns the IDs of all members, for the reconciliation sweep.
	ListMemberIDs(ctx context.Context) ([]string, error)
}

// MemberTransactionSupport defines the locking and cache-write operations a
// ledger transaction needs against the member row.
type MemberTransactionSupport interface {
	// FindMemberByIDForUpdate selects the member row and locks it for update.
	// Must be called within a transaction.
	FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.Member, error)

	// UpdateMemberBalancesInTx overwrites the cached balance projections. The
	// values must have been recomputed from the entry log, never incremented
	// in place.
	UpdateMemberBalancesInTx(ctx context.Context, tx pgx.Tx, userID string, balance, loanBalance decimal.Decimal, updatedBy string, now time.Time) error
}

// MemberRepositoryFacade combines all member repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberTransactionSupport
}

// GroupReader defines read operations for group reference data.
type GroupReader interface {
	// FindGroupByID retrieves a group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupIDs returns the IDs of all groups, for the reconciliation sweep.
	ListGroupIDs(ctx context.Context) ([]string, error)
}

// GroupTransactionSupport mirrors MemberTransactionSupport for group rows.
type GroupTransactionSupport interface {
	// FindGroupByIDForUpdate selects the group row and locks it for update.
	FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error)

	// UpdateGroupBalancesInTx overwrites the cached balance projections.
	UpdateGroupBalancesInTx(ctx context.Context, tx pgx.Tx, groupID string, balance, loanBalance decimal.Decimal, updatedBy string, now time.Time) error
}

// GroupRepositoryFacade combines all group repository interfaces.
type GroupRepositoryFacade interface {
	GroupReader
	GroupTransactionSupport
}

// ProjectReader defines read operations for savings-cycle reference data.
type ProjectReader interface {
	// FindProjectByID retrieves a project (savings cycle) by its identifier.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LedgerRepo  LedgerRepositoryWithTx
	MemberRepo  MemberRepositoryFacade
	GroupRepo   GroupRepositoryFacade
	ProjectRepo ProjectReader
}
