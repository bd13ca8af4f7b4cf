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

const groupColumns = `group_id, name, is_active, balance, loan_balance,
	       created_at, created_by, last_updated_at, last_updated_by`

type PgxGroupRepository struct {
	pool *pgxpool.Pool
}

func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{pool: pool}
}

var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

// FindGroupByID retrieves a group by its unique identifier.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE group_id = $1;`
	return r.scanGroupRow(r.pool.QueryRow(ctx, query, groupID), groupID)
}

// FindGroupByIDForUpdate selects the group row and locks it for update.
// Must be called within a transaction, and always after the member lock so
// that concurrent operations acquire locks in the same order.
func (r *PgxGroupRepository) FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE group_id = $1 FOR UPDATE;`
	return r.scanGroupRow(tx.QueryRow(ctx, query, groupID), groupID)
}

func (r *PgxGroupRepository) scanGroupRow(row pgx.Row, groupID string) (*domain.Group, error) {
	var g models.Group
	err := row.Scan(
		&g.GroupID,
		&g.Name,
		&g.IsActive,
		&g.Balance,
		&g.LoanBalance,
		&g.CreatedAt,
		&g.CreatedBy,
		&g.LastUpdatedAt,
		&g.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find group "+groupID, err)
	}
	group := mapping.ToDomainGroup(g)
	return &group, nil
}

// ListGroupIDs returns the IDs of all groups for the reconciliation sweep.
func (r *PgxGroupRepository) ListGroupIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT group_id FROM groups ORDER BY group_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list group IDs", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan group ID row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating group ID rows", err)
	}
	return ids, nil
}

// UpdateGroupBalancesInTx overwrites the group's cached balance projections
// with values recomputed from the entry log.
func (r *PgxGroupRepository) UpdateGroupBalancesInTx(ctx context.Context, tx pgx.Tx, groupID string, balance, loanBalance decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE groups
		SET balance = $2, loan_balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE group_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, groupID, balance, loanBalance, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cached balances for group "+groupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: group %s not found during balance update", apperrors.ErrNotFound, groupID)
	}
	return nil
}
