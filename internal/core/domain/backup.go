package domain

import "time"

// Backup is one journal snapshot. Payload is the serialized journal as
// written by the coordinator; one backup exists per calendar day, with the
// latest snapshot of the day overwriting earlier ones.
type Backup struct {
	BackupID   int64     `json:"backupID"`
	BackupDate string    `json:"backupDate"` // YYYY-MM-DD, unique
	Payload    []byte    `json:"-"`
	EntryCount int       `json:"entryCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditEvent is one row of the append-only audit trail. Writes are
// best-effort: a failed audit insert never fails the business operation.
type AuditEvent struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
