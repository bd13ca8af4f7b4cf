package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all PostgreSQL-backed repositories over a shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LedgerRepo:  newPgxLedgerRepository(pool),
		MemberRepo:  newPgxMemberRepository(pool),
		GroupRepo:   newPgxGroupRepository(pool),
		ProjectRepo: newPgxProjectRepository(pool),
	}
}
