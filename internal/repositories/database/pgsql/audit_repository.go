package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	"github.com/shopbooks/shopbooks/internal/models"
	"github.com/shopbooks/shopbooks/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveEvent appends one audit row.
func (r *PgxAuditRepository) SaveEvent(ctx context.Context, event domain.AuditEvent) error {
	model := mapping.ToModelAuditEvent(event)
	query := `
		INSERT INTO audit_log (user_name, action, details, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, model.UserName, model.Action, model.Details, model.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save audit event: %w", err)
	}
	return nil
}

// ListRecentEvents retrieves the latest events, newest first.
func (r *PgxAuditRepository) ListRecentEvents(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_name, action, details, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	events := []domain.AuditEvent{}
	for rows.Next() {
		var model models.AuditEvent
		if err := rows.Scan(&model.ID, &model.UserName, &model.Action, &model.Details, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		events = append(events, mapping.ToDomainAuditEvent(model))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", rows.Err())
	}
	return events, nil
}
