package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrMatriculeExists      = errors.New("matricule already exists")
	ErrCINExists            = errors.New("CIN already registered")
	ErrEmailExists          = errors.New("email already registered")
	ErrManagerNotFound      = errors.New("manager not found")
	ErrPositionNotFound     = errors.New("position not found")
	ErrInvalidStatus        = errors.New("status must be one of ACTIF, SUSPENDU, QUITTE")
	ErrFutureDateNotAllowed = errors.New("date cannot be in the future")
	ErrUnauthorized         = errors.New("unauthorized to access this employee")
	ErrCannotDeleteSelf     = errors.New("cannot delete your own employee record")
	ErrNoEmployeeProfile    = errors.New("no employee profile linked to this account")
)
