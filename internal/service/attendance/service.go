package attendance

import (
	"context"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/attendance"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
)

const (
	defaultHistoryLimit = 31
	defaultListLimit    = 20
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func (s *AttendanceServiceImpl) callerEmployeeID(ctx context.Context) (string, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return "", err
	}
	if caller.EmployeeID == nil {
		return "", attendance.ErrNoEmployeeProfile
	}
	return *caller.EmployeeID, nil
}

// CheckIn implements attendance.AttendanceService. One record per
// employee per UTC day; a second check-in is rejected.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := s.callerEmployeeID(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := req.ParsedTimestamp(time.Now().UTC())
	day := attendance.DayOf(at)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil && existing.CheckInTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	checkIn := at.UTC()

	if existing != nil {
		// An ABSENT record was backfilled; the late check-in overrides it
		existing.CheckInTime = &checkIn
		existing.Notes = mergeNotes(existing.Notes, req.Notes)
		existing.Rederive()

		updated, err := s.attendanceRepo.Update(ctx, *existing)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return updated.ToResponse(), nil
	}

	status, totalHours := attendance.Derive(&checkIn, nil)
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        day,
		CheckInTime: &checkIn,
		TotalHours:  totalHours,
		Status:      status,
		Notes:       req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return created.ToResponse(), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := s.callerEmployeeID(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := req.ParsedTimestamp(time.Now().UTC())
	day := attendance.DayOf(at)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing == nil || existing.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := at.UTC()
	existing.CheckOutTime = &checkOut
	existing.Notes = mergeNotes(existing.Notes, req.Notes)
	existing.Rederive()

	updated, err := s.attendanceRepo.Update(ctx, *existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return updated.ToResponse(), nil
}

// GetToday implements attendance.AttendanceService. Returns nil when
// nothing was recorded yet.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	employeeID, err := s.callerEmployeeID(ctx)
	if err != nil {
		return nil, err
	}

	today := attendance.DayOf(time.Now().UTC())
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := record.ToResponse()
	return &resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	employeeID, err := s.callerEmployeeID(ctx)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultHistoryLimit
	}

	records, total, err := s.attendanceRepo.GetMyAttendance(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(records), total, nil
}

// ListAttendance implements attendance.AttendanceService. Managers see
// only their direct reports; admin RH sees everyone.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	if caller.IsManager() {
		if caller.EmployeeID == nil {
			return nil, 0, attendance.ErrNoEmployeeProfile
		}
		filter.ManagerEmployeeID = caller.EmployeeID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultListLimit
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(records), total, nil
}

// DailySummary implements attendance.AttendanceService. Defaults to
// the current UTC day when no date is given.
func (s *AttendanceServiceImpl) DailySummary(ctx context.Context, date *string) (attendance.DailySummaryResponse, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.DailySummaryResponse{}, err
	}

	day := attendance.DayOf(time.Now().UTC())
	if date != nil && *date != "" {
		parsed, ok := validator.IsValidDate(*date)
		if !ok {
			return attendance.DailySummaryResponse{}, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
		day = attendance.DayOf(parsed)
	}

	var managerEmployeeID *string
	if caller.IsManager() {
		if caller.EmployeeID == nil {
			return attendance.DailySummaryResponse{}, attendance.ErrNoEmployeeProfile
		}
		managerEmployeeID = caller.EmployeeID
	}

	records, err := s.attendanceRepo.ListByDate(ctx, day, managerEmployeeID)
	if err != nil {
		return attendance.DailySummaryResponse{}, err
	}

	summary := attendance.DailySummaryResponse{
		Date:    day.Format("2006-01-02"),
		Records: toResponses(records),
	}
	for i := range records {
		switch records[i].Status {
		case attendance.StatusComplet:
			summary.Present++
		case attendance.StatusIncomplet:
			summary.Incomplete++
		case attendance.StatusAbsent:
			summary.Absent++
		}
	}

	return summary, nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}
	return responses
}

func mergeNotes(existing, incoming *string) *string {
	if incoming == nil {
		return existing
	}
	if existing == nil || *existing == "" {
		return incoming
	}
	merged := *existing + " / " + *incoming
	return &merged
}
