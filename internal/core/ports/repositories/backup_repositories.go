package repositories

import (
	"context"

	"github.com/shopbooks/shopbooks/internal/core/domain"
)

// BackupRepositoryFacade defines operations on stored journal snapshots.
type BackupRepositoryFacade interface {
	// UpsertBackup stores a snapshot for its calendar day. A snapshot for a
	// day that already has one replaces it; other days are untouched.
	UpsertBackup(ctx context.Context, backup domain.Backup) (*domain.Backup, error)

	// FindBackupByID retrieves a snapshot including its payload.
	FindBackupByID(ctx context.Context, backupID int64) (*domain.Backup, error)

	// ListBackups retrieves snapshot metadata (no payloads), newest first.
	ListBackups(ctx context.Context) ([]domain.Backup, error)
}

// AuditRepositoryFacade defines operations on the append-only audit trail.
type AuditRepositoryFacade interface {
	// SaveEvent appends one audit row.
	SaveEvent(ctx context.Context, event domain.AuditEvent) error

	// ListRecentEvents retrieves the latest events, newest first.
	ListRecentEvents(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}
