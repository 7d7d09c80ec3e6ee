package user

import (
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	IsFirstLogin bool       `json:"is_first_login"`
	EmployeeID   *string    `json:"employee_id,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToResponse converts a User entity to its API representation
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		IsFirstLogin: u.IsFirstLogin,
		EmployeeID:   u.EmployeeID,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UpdateUserRequest represents an admin update of a user account.
// Only the listed fields can be changed.
type UpdateUserRequest struct {
	ID       string  `json:"-"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email == nil && r.Role == nil && r.IsActive == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of email, role, is_active is required",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of ADMIN_RH, MANAGER, EMPLOYEE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListUsersFilter holds the allow-listed query filters for user listing.
// Unknown query parameters are ignored at the handler level.
type ListUsersFilter struct {
	Role     *string
	IsActive *bool
	Search   *string
	Page     int
	Limit    int
}

func (f *ListUsersFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Role != nil && !Role(*f.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of ADMIN_RH, MANAGER, EMPLOYEE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
