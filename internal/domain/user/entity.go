package user

import "time"

type Role string

const (
	RoleAdmin          Role = "Admin"           // Full access including user management
	RoleHRManager      Role = "HR Manager"      // Records, employees, archive, activity
	RolePayrollOfficer Role = "Payroll Officer" // Captures and edits records, exports
	RoleViewer         Role = "Viewer"          // Read only
)

var Roles = []Role{RoleAdmin, RoleHRManager, RolePayrollOfficer, RoleViewer}

func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Email        *string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can manage other users
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin checks if the account is allowed to authenticate
func (u *User) CanLogin() bool {
	return u.Active
}
