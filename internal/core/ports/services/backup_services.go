package services

import (
	"context"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopbooks/shopbooks/internal/dto"
)

// BackupSvcFacade coordinates journal snapshots and restores.
type BackupSvcFacade interface {
	// Snapshot serializes the whole journal and stores it under today's
	// date, replacing an earlier snapshot from the same day.
	Snapshot(ctx context.Context, takenBy string) (*domain.Backup, error)

	// ListBackups retrieves snapshot metadata, newest first.
	ListBackups(ctx context.Context) ([]domain.Backup, error)

	// Restore clears the journal, reloads it from the chosen snapshot in
	// fixed-size batches, and recomputes every account balance. Batches
	// already inserted are kept if a later batch fails.
	Restore(ctx context.Context, backupID int64, requestedBy string) (*dto.RestoreResult, error)
}

// AuditSvc records audit events. Writes are best-effort: failures are
// logged and swallowed so they never fail the business operation.
type AuditSvc interface {
	Record(ctx context.Context, userName, action, details string)

	// ListRecent retrieves the latest audit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}
