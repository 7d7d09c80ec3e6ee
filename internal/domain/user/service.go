package user

import "context"

// Service defines admin-facing business logic for user accounts
type Service interface {
	// List retrieves user accounts with filters and pagination
	List(ctx context.Context, filter ListUsersFilter) ([]UserResponse, int64, error)

	// Get retrieves a single user account by ID
	Get(ctx context.Context, id string) (UserResponse, error)

	// Update applies an allow-listed partial update and audits the change
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// ToggleStatus flips the is_active flag and notifies the account owner
	ToggleStatus(ctx context.Context, id string) (UserResponse, error)

	// Delete deactivates a user account (accounts are never hard-deleted)
	Delete(ctx context.Context, id string) error
}
