package attendance

import (
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     *string    `json:"employee_name,omitempty"`
	EmployeePosition *string    `json:"employee_position,omitempty"`
	Date             string     `json:"date"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	TotalHours       *float64   `json:"total_hours,omitempty"`
	Status           string     `json:"status"`
	Notes            *string    `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToResponse converts an Attendance entity to its API representation
func (a *Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		EmployeeName:     a.EmployeeName,
		EmployeePosition: a.EmployeePosition,
		Date:             a.Date.Format("2006-01-02"),
		CheckInTime:      a.CheckInTime,
		CheckOutTime:     a.CheckOutTime,
		TotalHours:       a.TotalHours,
		Status:           string(a.Status),
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// RecordRequest carries an optional explicit check-in or check-out
// timestamp; when absent the server clock is used.
type RecordRequest struct {
	Timestamp *string `json:"timestamp,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an ISO8601 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedTimestamp returns the explicit timestamp, or now when absent.
func (r *RecordRequest) ParsedTimestamp(now time.Time) time.Time {
	if r.Timestamp == nil {
		return now
	}
	t, ok := validator.IsValidDateTime(*r.Timestamp)
	if !ok {
		return now
	}
	return t
}

// MyAttendanceFilter filters the authenticated employee's own history
type MyAttendanceFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *MyAttendanceFilter) Validate() error {
	return validateAttendanceDates(f.StartDate, f.EndDate, f.Status)
}

// AttendanceFilter filters the management listing
type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int

	// Populated from claims, never from the query string
	ManagerEmployeeID *string
}

func (f *AttendanceFilter) Validate() error {
	return validateAttendanceDates(f.StartDate, f.EndDate, f.Status)
}

func validateAttendanceDates(startDate, endDate, status *string) error {
	var errs validator.ValidationErrors

	if startDate != nil && *startDate != "" {
		if _, ok := validator.IsValidDate(*startDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}

	if endDate != nil && *endDate != "" {
		if _, ok := validator.IsValidDate(*endDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}

	if status != nil && *status != "" {
		valid := []string{string(StatusComplet), string(StatusIncomplet), string(StatusAbsent)}
		if !validator.IsInSlice(*status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of COMPLET, INCOMPLET, ABSENT",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DailySummaryResponse aggregates a single day for managers and RH
type DailySummaryResponse struct {
	Date       string               `json:"date"`
	Present    int                  `json:"present"`
	Incomplete int                  `json:"incomplete"`
	Absent     int                  `json:"absent"`
	Records    []AttendanceResponse `json:"records"`
}
