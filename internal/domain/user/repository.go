package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListUsersFilter) ([]User, int64, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetActive(ctx context.Context, userID string, active bool) error
	SetLastLogin(ctx context.Context, userID string, at time.Time) error
	SetResetToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error
	GetByResetToken(ctx context.Context, tokenHash string) (User, error)
	ClearResetToken(ctx context.Context, userID string, clearFirstLogin bool) error
}
