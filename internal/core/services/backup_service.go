package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
)

// restoreBatchSize is how many journal rows each restore insert carries.
const restoreBatchSize = 100

// backupService coordinates journal snapshots and restores. A mutex
// serializes restores within the process: a restore rewrites the whole
// journal and must never interleave with another restore.
type backupService struct {
	BaseService
	backupRepo  portsrepo.BackupRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	reconciler  portssvc.ReconcilerSvc
	audit       portssvc.AuditSvc

	restoreMu sync.Mutex
}

// BackupServiceOption is a functional option for configuring the backup service
type BackupServiceOption func(*backupService)

// WithBackupAuthorizer adds an authorizer consulted before restores
func WithBackupAuthorizer(authorizer portssvc.Authorizer) BackupServiceOption {
	return func(s *backupService) {
		s.Authorizer = authorizer
	}
}

// WithBackupAudit adds the audit trail dependency
func WithBackupAudit(audit portssvc.AuditSvc) BackupServiceOption {
	return func(s *backupService) {
		s.audit = audit
	}
}

// NewBackupService creates a new backup service.
func NewBackupService(backupRepo portsrepo.BackupRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, reconciler portssvc.ReconcilerSvc, options ...BackupServiceOption) portssvc.BackupSvcFacade {
	svc := &backupService{
		backupRepo:  backupRepo,
		journalRepo: journalRepo,
		reconciler:  reconciler,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BackupSvcFacade = (*backupService)(nil)

// Snapshot serializes the whole journal and stores it under today's date.
// A second snapshot on the same day replaces the first; other days keep theirs.
func (s *backupService) Snapshot(ctx context.Context, takenBy string) (*domain.Backup, error) {
	entries, err := s.journalRepo.ListAllEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read journal for snapshot")
		return nil, err
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("serializing journal: %w", err)
	}

	backup := domain.Backup{
		BackupDate: time.Now().UTC().Format(dateLayout),
		Payload:    payload,
		EntryCount: len(entries),
		CreatedAt:  time.Now().UTC(),
	}
	saved, err := s.backupRepo.UpsertBackup(ctx, backup)
	if err != nil {
		s.LogError(ctx, err, "Failed to store snapshot")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}

	if s.audit != nil {
		s.audit.Record(ctx, takenBy, "SNAPSHOT",
			fmt.Sprintf("snapshot of %d entries stored for %s", saved.EntryCount, saved.BackupDate))
	}

	s.LogInfo(ctx, "Journal snapshot stored",
		slog.Int64("backup_id", saved.BackupID),
		slog.Int("entries", saved.EntryCount))
	return saved, nil
}

func (s *backupService) ListBackups(ctx context.Context) ([]domain.Backup, error) {
	backups, err := s.backupRepo.ListBackups(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list backups")
		return nil, err
	}
	return backups, nil
}

// Restore clears the journal and reloads it from the chosen snapshot in
// fixed-size batches. Batches already inserted are kept when a later batch
// fails; either way every account balance is recomputed from whatever the
// journal now holds, so the balance invariant survives a partial restore.
func (s *backupService) Restore(ctx context.Context, backupID int64, requestedBy string) (*dto.RestoreResult, error) {
	if err := s.RequireCapability(ctx, requestedBy, domain.CapRestore); err != nil {
		s.LogWarn(ctx, "User not authorized to restore",
			slog.String("user_id", requestedBy),
			slog.Int64("backup_id", backupID))
		return nil, err
	}

	s.restoreMu.Lock()
	defer s.restoreMu.Unlock()

	backup, err := s.backupRepo.FindBackupByID(ctx, backupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load backup", slog.Int64("backup_id", backupID))
		}
		return nil, err
	}

	var entries []domain.JournalEntry
	if err := json.Unmarshal(backup.Payload, &entries); err != nil {
		return nil, fmt.Errorf("%w: backup %d: %v", apperrors.ErrCorruptBackup, backupID, err)
	}

	// Store-assigned fields must not be carried across the restore.
	for i := range entries {
		entries[i].ID = 0
		entries[i].CreatedAt = time.Time{}
	}

	if err := s.journalRepo.DeleteAllEntries(ctx); err != nil {
		s.LogError(ctx, err, "Failed to clear journal for restore")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}

	restored := 0
	var batchErr error
	for start := 0; start < len(entries); start += restoreBatchSize {
		end := start + restoreBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := s.journalRepo.InsertEntries(ctx, entries[start:end]); err != nil {
			// Earlier batches stay in place; the recompute below brings the
			// cached balances in line with the partial journal.
			batchErr = err
			s.LogError(ctx, err, "Restore batch failed",
				slog.Int("offset", start),
				slog.Int64("backup_id", backupID))
			break
		}
		restored += end - start
	}

	recomputed, recomputeErr := s.reconciler.RecomputeAll(ctx)
	if recomputeErr != nil {
		s.LogError(ctx, recomputeErr, "Post-restore recompute failed")
	}

	if s.audit != nil {
		s.audit.Record(ctx, requestedBy, "RESTORE",
			fmt.Sprintf("restored %d of %d entries from backup %s", restored, len(entries), backup.BackupDate))
	}

	result := &dto.RestoreResult{
		BackupID:   backupID,
		Restored:   restored,
		Recomputed: recomputed,
	}
	if batchErr != nil {
		return result, fmt.Errorf("%w: restore stopped after %d entries: %v",
			apperrors.ErrStoreWrite, restored, batchErr)
	}
	if recomputeErr != nil {
		return result, recomputeErr
	}

	s.LogInfo(ctx, "Journal restored",
		slog.Int64("backup_id", backupID),
		slog.Int("entries", restored),
		slog.Int("accounts_recomputed", recomputed))
	return result, nil
}
