package mapping

import (
	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopbooks/shopbooks/internal/models"
)

// ToDomainBackup converts a model Backup to a domain Backup
func ToDomainBackup(m models.Backup) domain.Backup {
	return domain.Backup{
		BackupID:   m.BackupID,
		BackupDate: m.BackupDate,
		Payload:    m.Payload,
		EntryCount: m.EntryCount,
		CreatedAt:  m.CreatedAt,
	}
}

// ToModelBackup converts a domain Backup to a model Backup
func ToModelBackup(d domain.Backup) models.Backup {
	return models.Backup{
		BackupID:   d.BackupID,
		BackupDate: d.BackupDate,
		Payload:    d.Payload,
		EntryCount: d.EntryCount,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditEvent converts a model AuditEvent to a domain AuditEvent
func ToDomainAuditEvent(m models.AuditEvent) domain.AuditEvent {
	return domain.AuditEvent{
		ID:        m.ID,
		UserName:  m.UserName,
		Action:    m.Action,
		Details:   m.Details,
		CreatedAt: m.CreatedAt,
	}
}

// ToModelAuditEvent converts a domain AuditEvent to a model AuditEvent
func ToModelAuditEvent(d domain.AuditEvent) models.AuditEvent {
	return models.AuditEvent{
		ID:        d.ID,
		UserName:  d.UserName,
		Action:    d.Action,
		Details:   d.Details,
		CreatedAt: d.CreatedAt,
	}
}
