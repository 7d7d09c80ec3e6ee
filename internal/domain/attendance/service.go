package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the start of the authenticated employee's day
	CheckIn(ctx context.Context, req RecordRequest) (AttendanceResponse, error)

	// CheckOut records the end of the day and re-derives status and hours
	CheckOut(ctx context.Context, req RecordRequest) (AttendanceResponse, error)

	// GetToday retrieves today's record for the authenticated employee
	GetToday(ctx context.Context) (*AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) ([]AttendanceResponse, int64, error)

	// ListAttendance retrieves attendance records with role-scoped visibility
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error)

	// DailySummary aggregates one day for managers and RH
	DailySummary(ctx context.Context, date *string) (DailySummaryResponse, error)
}
