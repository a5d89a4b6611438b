package domain

// Capability names a privileged operation a user may be granted.
type Capability string

const (
	CapDeleteEntry Capability = "DELETE_ENTRY"
	CapViewReports Capability = "VIEW_REPORTS"
	CapManageUsers Capability = "MANAGE_USERS"
	CapRestore     Capability = "RESTORE"
)

// User is an operator of the system. PasswordHash is a bcrypt hash; the
// plaintext never leaves the login handler.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CanDelete    bool   `json:"canDelete"`
	CanReports   bool   `json:"canReports"`
	CanUsers     bool   `json:"canUsers"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Has reports whether the user holds the given capability. The admin role
// implies everything; restore rides on the delete capability since both
// rewrite the journal wholesale.
func (u User) Has(cap Capability) bool {
	if u.Role == "admin" || u.Role == "administrator" {
		return true
	}
	switch cap {
	case CapDeleteEntry, CapRestore:
		return u.CanDelete
	case CapViewReports:
		return u.CanReports
	case CapManageUsers:
		return u.CanUsers
	}
	return false
}
