package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	"github.com/shopbooks/shopbooks/internal/models"
	"github.com/shopbooks/shopbooks/internal/utils/mapping"
)

type PgxBackupRepository struct {
	BaseRepository
}

// newPgxBackupRepository creates a new repository for journal snapshots.
func newPgxBackupRepository(pool *pgxpool.Pool) portsrepo.BackupRepositoryFacade {
	return &PgxBackupRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BackupRepositoryFacade = (*PgxBackupRepository)(nil)

// UpsertBackup stores a snapshot for its calendar day. backup_date carries a
// unique constraint, so a second snapshot on the same day replaces the first.
func (r *PgxBackupRepository) UpsertBackup(ctx context.Context, backup domain.Backup) (*domain.Backup, error) {
	model := mapping.ToModelBackup(backup)
	query := `
		INSERT INTO backups (backup_date, payload, entry_count, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (backup_date)
		DO UPDATE SET payload = EXCLUDED.payload, entry_count = EXCLUDED.entry_count, created_at = EXCLUDED.created_at
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		model.BackupDate,
		model.Payload,
		model.EntryCount,
		model.CreatedAt,
	).Scan(&model.BackupID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert backup for %s: %w", model.BackupDate, err)
	}
	saved := mapping.ToDomainBackup(model)
	return &saved, nil
}

// FindBackupByID retrieves a snapshot including its payload.
func (r *PgxBackupRepository) FindBackupByID(ctx context.Context, backupID int64) (*domain.Backup, error) {
	query := `
		SELECT id, backup_date, payload, entry_count, created_at
		FROM backups
		WHERE id = $1;
	`
	var model models.Backup
	err := r.Pool.QueryRow(ctx, query, backupID).Scan(
		&model.BackupID,
		&model.BackupDate,
		&model.Payload,
		&model.EntryCount,
		&model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find backup %d: %w", backupID, err)
	}
	backup := mapping.ToDomainBackup(model)
	return &backup, nil
}

// ListBackups retrieves snapshot metadata without payloads, newest first.
func (r *PgxBackupRepository) ListBackups(ctx context.Context) ([]domain.Backup, error) {
	query := `
		SELECT id, backup_date, entry_count, created_at
		FROM backups
		ORDER BY backup_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	backups := []domain.Backup{}
	for rows.Next() {
		var model models.Backup
		if err := rows.Scan(&model.BackupID, &model.BackupDate, &model.EntryCount, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan backup row: %w", err)
		}
		backups = append(backups, mapping.ToDomainBackup(model))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating backup rows: %w", rows.Err())
	}
	return backups, nil
}
