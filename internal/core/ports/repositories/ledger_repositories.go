package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
)

// LedgerReader defines read operations over the entry log. All sums are
// signed totals: the balance of an account is simply the sum of the signed
// amounts of its entries.
type LedgerReader interface {
	// FindEntryByID retrieves a single ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// SumSigned returns the signed total over all entries matching the owner
	// and account type, optionally scoped to a project.
	SumSigned(ctx context.Context, owner domain.Owner, accountType domain.AccountType, projectID *string) (decimal.Decimal, error)

	// SumSignedByAccountType returns the signed totals for every account type
	// of an owner in one pass, optionally scoped to a project.
	SumSignedByAccountType(ctx context.Context, owner domain.Owner, projectID *string) (map[domain.AccountType]decimal.Decimal, error)

	// ListRecentEntries retrieves a keyset-paginated list of entries affecting
	// the owner, newest first. Returns the page and a token for the next one.
	ListRecentEntries(ctx context.Context, owner domain.Owner, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines the single write operation of the store: atomic
// persistence of a primary entry and its contra.
type LedgerWriter interface {
	// AppendPair persists both halves of a contra pair and their mutual
	// back-references inside the given transaction. Either both rows and the
	// linkage exist afterwards, or the error leaves the transaction ready to
	// be rolled back with no partial state.
	AppendPair(ctx context.Context, tx pgx.Tx, primary domain.LedgerEntry, contra domain.LedgerEntry) error
}

// LedgerTransactionSupport defines reads that must see the open transaction's
// own writes, used for the post-write balance recompute.
type LedgerTransactionSupport interface {
	// SumSignedByAccountTypeInTx is SumSignedByAccountType against the given
	// transaction instead of the pool.
	SumSignedByAccountTypeInTx(ctx context.Context, tx pgx.Tx, owner domain.Owner, projectID *string) (map[domain.AccountType]decimal.Decimal, error)
}

// LedgerRepositoryFacade combines all ledger store interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTransactionSupport
}

// LedgerRepositoryWithTx extends the facade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
