package auth

import "context"

type AuthService interface {
	// Register creates a bare user account (admin RH only)
	Register(ctx context.Context, req RegisterRequest) (UserSummary, error)

	// Login authenticates with email and password
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle matches a verified Google email to an existing account
	LoginWithGoogle(ctx context.Context, email string, verified bool) (TokenResponse, error)

	// ForgotPassword issues a reset token; the response never reveals
	// whether the email exists
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error

	// ResetPassword consumes a reset token
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// ChangePassword verifies the current password before replacing it
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
