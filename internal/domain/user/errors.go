package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserEmailExists       = errors.New("email already registered")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidPasswordLength = errors.New("password must be at least 8 characters")
	ErrInvalidRole           = errors.New("invalid role")
	ErrAccountInactive       = errors.New("account is deactivated")
	ErrAdminRHAccessRequired = errors.New("admin RH access required")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrAccessDenied          = errors.New("access denied")
	ErrSelfDeactivation      = errors.New("cannot deactivate your own account")
)
