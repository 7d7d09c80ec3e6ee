package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records
type AttendanceRepository interface {
	// Create creates a new attendance record. The (employee_id, attendance_date)
	// unique index maps violations to ErrAttendanceExists.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for a given UTC day,
	// or nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListByDate retrieves all records for a single UTC day,
	// optionally restricted to a manager's direct reports
	ListByDate(ctx context.Context, date time.Time, managerEmployeeID *string) ([]Attendance, error)

	// BulkCreateAbsences inserts absent records, skipping days that
	// already have a record
	BulkCreateAbsences(ctx context.Context, absences []Attendance) (int64, error)
}
