package models

import "time"

// Backup is the persisted shape of a journal snapshot. backup_date carries a
// unique constraint: one row per calendar day, last write wins.
type Backup struct {
	BackupID   int64     `db:"id"`
	BackupDate string    `db:"backup_date"`
	Payload    []byte    `db:"payload"`
	EntryCount int       `db:"entry_count"`
	CreatedAt  time.Time `db:"created_at"`
}

// AuditEvent is the persisted shape of an audit trail row.
type AuditEvent struct {
	ID        int64     `db:"id"`
	UserName  string    `db:"user_name"`
	Action    string    `db:"action"`
	Details   string    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}
