package dto

import (
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
)

// BackupResponse is snapshot metadata returned to the caller.
type BackupResponse struct {
	BackupID   int64     `json:"backupID"`
	BackupDate string    `json:"backupDate"`
	EntryCount int       `json:"entryCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RestoreRequest selects the snapshot to restore.
type RestoreRequest struct {
	BackupID int64 `json:"backupID" binding:"required"`
}

// RestoreResult reports what a restore actually did. Restored may be lower
// than the snapshot's entry count when a batch failed part-way: earlier
// batches are kept, not rolled back.
type RestoreResult struct {
	BackupID   int64 `json:"backupID"`
	Restored   int   `json:"restored"`
	Recomputed int   `json:"recomputedAccounts"`
}

// ToBackupResponse converts a domain.Backup to its response DTO
func ToBackupResponse(b *domain.Backup) BackupResponse {
	return BackupResponse{
		BackupID:   b.BackupID,
		BackupDate: b.BackupDate,
		EntryCount: b.EntryCount,
		CreatedAt:  b.CreatedAt,
	}
}

// ToListBackupResponse converts a slice of backups to response DTOs
func ToListBackupResponse(backups []domain.Backup) []BackupResponse {
	res := make([]BackupResponse, len(backups))
	for i := range backups {
		res[i] = ToBackupResponse(&backups[i])
	}
	return res
}
