package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
	"github.com/vslakit/vsla_ledger_app/internal/models"
	"github.com/vslakit/vsla_ledger_app/internal/utils/mapping"
)

const memberColumns = `user_id, group_id, name, is_active, balance, loan_balance,
	       created_at, created_by, last_updated_at, last_updated_by`

type PgxMemberRepository struct {
	pool *pgxpool.Pool
}

// newPgxMemberRepository creates a new repository for member reference data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{pool: pool}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

// FindMemberByID retrieves a member by their unique identifier.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, userID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM users WHERE user_id = $1;`
	return r.scanMemberRow(r.pool.QueryRow(ctx, query, userID), userID)
}

// FindMemberByIDForUpdate selects the member row and locks it for update.
// Must be called within a transaction; the lock serializes concurrent ledger
// operations against the same member.
func (r *PgxMemberRepository) FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM users WHERE user_id = $1 FOR UPDATE;`
	return r.scanMemberRow(tx.QueryRow(ctx, query, userID), userID)
}

func (r *PgxMemberRepository) scanMemberRow(row pgx.Row, userID string) (*domain.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.UserID,
		&m.GroupID,
		&m.Name,
		&m.IsActive,
		&m.Balance,
		&m.LoanBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find member "+userID, err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

// ListMemberIDs returns the IDs of all members for the reconciliation sweep.
func (r *PgxMemberRepository) ListMemberIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM users ORDER BY user_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list member IDs", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan member ID row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating member ID rows", err)
	}
	return ids, nil
}

// UpdateMemberBalancesInTx overwrites the member's cached balance projections
// with values recomputed from the entry log.
func (r *PgxMemberRepository) UpdateMemberBalancesInTx(ctx context.Context, tx pgx.Tx, userID string, balance, loanBalance decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET balance = $2, loan_balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, userID, balance, loanBalance, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cached balances for member "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: member %s not found during balance update", apperrors.ErrNotFound, userID)
	}
	return nil
}
