package user

import "time"

type Role string

const (
	RoleAdminRH  Role = "ADMIN_RH" // HR administrator - full access
	RoleManager  Role = "MANAGER"  // Can process team leave/absence requests
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdminRH, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID                  string
	Email               string
	PasswordHash        string
	Role                Role
	IsActive            bool
	IsFirstLogin        bool
	PasswordResetToken  *string
	PasswordResetExpiry *time.Time
	CreatedBy           *string
	LastLogin           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdminRH checks if user is an HR administrator
func (u *User) IsAdminRH() bool {
	return u.Role == RoleAdminRH
}

// CanProcessRequests checks if user can process leave and absence requests
func (u *User) CanProcessRequests() bool {
	return u.Role == RoleManager || u.Role == RoleAdminRH
}
