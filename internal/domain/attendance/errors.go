package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrNotCheckedIn       = errors.New("no check-in recorded for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance record already exists for this day")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
	ErrNoEmployeeProfile  = errors.New("no employee profile linked to this account")
)
