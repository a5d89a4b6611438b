package models

// User is the persisted shape of an operator row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CanDelete    bool   `db:"can_delete_entry"`
	CanReports   bool   `db:"can_view_reports"`
	CanUsers     bool   `db:"can_manage_users"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
