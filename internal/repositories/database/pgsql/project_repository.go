package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
	"github.com/vslakit/vsla_ledger_app/internal/models"
	"github.com/vslakit/vsla_ledger_app/internal/utils/mapping"
)

type PgxProjectRepository struct {
	pool *pgxpool.Pool
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectReader {
	return &PgxProjectRepository{pool: pool}
}

var _ portsrepo.ProjectReader = (*PgxProjectRepository)(nil)

// FindProjectByID retrieves a project by its unique identifier.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
		SELECT project_id, group_id, name, loan_max_multiplier, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM projects
		WHERE project_id = $1;
	`
	var m models.Project
	var groupID sql.NullString
	err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&m.ProjectID,
		&groupID,
		&m.Name,
		&m.LoanMaxMultiplier,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find project "+projectID, err)
	}
	if groupID.Valid {
		m.GroupID = groupID.String
	}
	project := mapping.ToDomainProject(m)
	return &project, nil
}
