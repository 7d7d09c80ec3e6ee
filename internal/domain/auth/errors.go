package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrResetTokenExpired    = errors.New("password reset token has expired")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrUserNotFound         = errors.New("user not found")
	ErrGoogleEmailNotLinked = errors.New("no account registered for this Google email")
	ErrOAuthDisabled        = errors.New("Google login is not configured")
)
