package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
	"github.com/vslakit/vsla_ledger_app/internal/models"
	"github.com/vslakit/vsla_ledger_app/internal/utils/mapping"
	"github.com/vslakit/vsla_ledger_app/internal/utils/pagination"
)

const entryColumns = `entry_id, project_id, amount, signed_amount, owner_type, owner_id,
	       account_type, transaction_type, source, is_contra_entry, contra_entry_id,
	       description, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the ledger entry log.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// AppendPair persists both halves of a contra pair inside the caller's
// transaction. The contra row is inserted carrying the primary's ID, then the
// primary is linked back, so the self-referencing foreign key is satisfied at
// every step. Any failure surfaces as ErrLedgerWrite and leaves the caller's
// transaction fit only for rollback.
func (r *PgxLedgerRepository) AppendPair(ctx context.Context, tx pgx.Tx, primary domain.LedgerEntry, contra domain.LedgerEntry) error {
	insertQuery := `
		INSERT INTO ledger_entries (
			entry_id, project_id, amount, signed_amount, owner_type, owner_id,
			account_type, transaction_type, source, is_contra_entry, contra_entry_id,
			description, transaction_date, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`

	modelPrimary := mapping.ToModelLedgerEntry(primary)
	modelContra := mapping.ToModelLedgerEntry(contra)

	// Primary goes in unlinked first; its contra_entry_id target doesn't exist yet.
	if err := r.insertEntry(ctx, tx, insertQuery, modelPrimary, nil); err != nil {
		return fmt.Errorf("%w: primary entry %s: %v", apperrors.ErrLedgerWrite, modelPrimary.EntryID, err)
	}
	if err := r.insertEntry(ctx, tx, insertQuery, modelContra, &modelPrimary.EntryID); err != nil {
		return fmt.Errorf("%w: contra entry %s: %v", apperrors.ErrLedgerWrite, modelContra.EntryID, err)
	}

	linkQuery := `UPDATE ledger_entries SET contra_entry_id = $2 WHERE entry_id = $1;`
	cmdTag, err := tx.Exec(ctx, linkQuery, modelPrimary.EntryID, modelContra.EntryID)
	if err != nil {
		return fmt.Errorf("%w: linking pair %s/%s: %v", apperrors.ErrLedgerWrite, modelPrimary.EntryID, modelContra.EntryID, err)
	}
	if cmdTag.RowsAffected() != 1 {
		return fmt.Errorf("%w: primary entry %s vanished while linking", apperrors.ErrLedgerWrite, modelPrimary.EntryID)
	}
	return nil
}

func (r *PgxLedgerRepository) insertEntry(ctx context.Context, tx pgx.Tx, query string, m models.LedgerEntry, contraEntryID *string) error {
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.ProjectID,
		m.Amount,
		m.SignedAmount,
		m.OwnerType,
		m.OwnerID,
		m.AccountType,
		m.TransactionType,
		m.Source,
		m.IsContraEntry,
		contraEntryID,
		m.Description,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

// FindEntryByID retrieves a single entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry "+entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// SumSigned returns the signed total for one (owner, accountType) account,
// optionally scoped to a project.
func (r *PgxLedgerRepository) SumSigned(ctx context.Context, owner domain.Owner, accountType domain.AccountType, projectID *string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(signed_amount), 0)
		FROM ledger_entries
		WHERE owner_type = $1 AND owner_id = $2 AND account_type = $3
	`
	args := []any{string(owner.Type), owner.ID, string(accountType)}
	if projectID != nil {
		query += ` AND project_id = $4`
		args = append(args, *projectID)
	}

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum entries for "+owner.String(), err)
	}
	return total, nil
}

// SumSignedByAccountType returns all of an owner's signed account totals in
// one aggregation pass.
func (r *PgxLedgerRepository) SumSignedByAccountType(ctx context.Context, owner domain.Owner, projectID *string) (map[domain.AccountType]decimal.Decimal, error) {
	return r.sumByAccountType(ctx, r.Pool, owner, projectID)
}

// SumSignedByAccountTypeInTx is SumSignedByAccountType against an open
// transaction, so it sees the transaction's own uncommitted writes.
func (r *PgxLedgerRepository) SumSignedByAccountTypeInTx(ctx context.Context, tx pgx.Tx, owner domain.Owner, projectID *string) (map[domain.AccountType]decimal.Decimal, error) {
	return r.sumByAccountType(ctx, tx, owner, projectID)
}

func (r *PgxLedgerRepository) sumByAccountType(ctx context.Context, q querier, owner domain.Owner, projectID *string) (map[domain.AccountType]decimal.Decimal, error) {
	query := `
		SELECT account_type, COALESCE(SUM(signed_amount), 0)
		FROM ledger_entries
		WHERE owner_type = $1 AND owner_id = $2
	`
	args := []any{string(owner.Type), owner.ID}
	if projectID != nil {
		query += ` AND project_id = $3`
		args = append(args, *projectID)
	}
	query += ` GROUP BY account_type;`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum entries by account type for "+owner.String(), err)
	}
	defer rows.Close()

	sums := make(map[domain.AccountType]decimal.Decimal)
	for rows.Next() {
		var accountType string
		var total decimal.Decimal
		if err := rows.Scan(&accountType, &total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account sum row for "+owner.String(), err)
		}
		sums[domain.AccountType(accountType)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account sum rows for "+owner.String(), err)
	}
	return sums, nil
}

// ListRecentEntries retrieves a keyset-paginated page of the owner's entries,
// ordered by (transaction_date, created_at) descending.
func (r *PgxLedgerRepository) ListRecentEntries(ctx context.Context, owner domain.Owner, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE owner_type = $1 AND owner_id = $2
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []any{string(owner.Type), owner.ID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for "+owner.String(), err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for "+owner.String(), scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for "+owner.String(), err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeToken(lastEntry.TransactionDate, lastEntry.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.ProjectID,
		&m.Amount,
		&m.SignedAmount,
		&m.OwnerType,
		&m.OwnerID,
		&m.AccountType,
		&m.TransactionType,
		&m.Source,
		&m.IsContraEntry,
		&m.ContraEntryID,
		&m.Description,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
