package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/attendance"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedCtx(t *testing.T, userID, role string, employeeID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tokenClaims := map[string]interface{}{
		"user_id": userID,
		"email":   "caller@example.com",
		"role":    role,
		"type":    "access",
	}
	if employeeID != "" {
		tokenClaims["employee_id"] = employeeID
	}

	token, _, err := ja.Encode(tokenClaims)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type stubAttendanceRepo struct {
	byDay   map[string]*attendance.Attendance
	created []attendance.Attendance
	updated []attendance.Attendance

	listFn func(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error)
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (s *stubAttendanceRepo) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	record.ID = "att-1"
	s.created = append(s.created, record)
	return record, nil
}

func (s *stubAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return s.byDay[dayKey(employeeID, date)], nil
}

func (s *stubAttendanceRepo) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	s.updated = append(s.updated, record)
	return record, nil
}

func (s *stubAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (s *stubAttendanceRepo) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (s *stubAttendanceRepo) ListByDate(ctx context.Context, date time.Time, managerEmployeeID *string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) (int64, error) {
	return int64(len(absences)), nil
}

type stubEmployeeRepo struct{}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	return newEmployee, nil
}

func (s *stubEmployeeRepo) ExistsByMatriculeOrCIN(ctx context.Context, matricule, cin string) (bool, error) {
	return false, nil
}

func (s *stubEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (s *stubEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (s *stubEmployeeRepo) GetDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) SetStatus(ctx context.Context, id string, status employee.Status) error {
	return nil
}

func (s *stubEmployeeRepo) AdjustLeaveBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	return nil
}

func (s *stubEmployeeRepo) IsManagerOf(ctx context.Context, managerEmployeeID, employeeID string) (bool, error) {
	return false, nil
}

func ts(s string) *string { return &s }

func TestCheckIn_CreatesIncompleteRecord(t *testing.T) {
	t.Parallel()

	repo := &stubAttendanceRepo{byDay: map[string]*attendance.Attendance{}}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	resp, err := svc.CheckIn(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), attendance.RecordRequest{
		Timestamp: ts("2026-03-02T08:30:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusIncomplet), resp.Status)
	assert.Equal(t, "2026-03-02", resp.Date)
	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].TotalHours)
}

func TestCheckIn_RejectsSecondCheckIn(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day := attendance.DayOf(checkIn)
	repo := &stubAttendanceRepo{byDay: map[string]*attendance.Attendance{
		dayKey("emp-1", day): {ID: "att-1", EmployeeID: "emp-1", Date: day, CheckInTime: &checkIn, Status: attendance.StatusIncomplet},
	}}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	_, err := svc.CheckIn(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), attendance.RecordRequest{
		Timestamp: ts("2026-03-02T09:00:00Z"),
	})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_OverridesBackfilledAbsence(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	zero := 0.0
	repo := &stubAttendanceRepo{byDay: map[string]*attendance.Attendance{
		dayKey("emp-1", day): {ID: "att-1", EmployeeID: "emp-1", Date: day, Status: attendance.StatusAbsent, TotalHours: &zero},
	}}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	resp, err := svc.CheckIn(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), attendance.RecordRequest{
		Timestamp: ts("2026-03-02T10:15:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusIncomplet), resp.Status)
	assert.Empty(t, repo.created)
	require.Len(t, repo.updated, 1)
	require.NotNil(t, repo.updated[0].CheckInTime)
}

func TestCheckOut_RequiresCheckIn(t *testing.T) {
	t.Parallel()

	repo := &stubAttendanceRepo{byDay: map[string]*attendance.Attendance{}}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	_, err := svc.CheckOut(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), attendance.RecordRequest{
		Timestamp: ts("2026-03-02T17:00:00Z"),
	})

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_DerivesCompleteDay(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	day := attendance.DayOf(checkIn)
	repo := &stubAttendanceRepo{byDay: map[string]*attendance.Attendance{
		dayKey("emp-1", day): {ID: "att-1", EmployeeID: "emp-1", Date: day, CheckInTime: &checkIn, Status: attendance.StatusIncomplet},
	}}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	resp, err := svc.CheckOut(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), attendance.RecordRequest{
		Timestamp: ts("2026-03-02T17:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusComplet), resp.Status)
	require.NotNil(t, resp.TotalHours)
	assert.InDelta(t, 8.5, *resp.TotalHours, 0.001)
}

func TestCheckOut_RejectsSecondCheckOut(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	day := attendance.DayOf(checkIn)
	repo := &stubAttendanceRepo{byDay: map[string]*attendance.Attendance{
		dayKey("emp-1", day): {ID: "att-1", EmployeeID: "emp-1", Date: day, CheckInTime: &checkIn, CheckOutTime: &checkOut, Status: attendance.StatusComplet},
	}}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	_, err := svc.CheckOut(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), attendance.RecordRequest{
		Timestamp: ts("2026-03-02T18:00:00Z"),
	})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestListAttendance_ScopesManagerToTeam(t *testing.T) {
	t.Parallel()

	var gotFilter attendance.AttendanceFilter
	repo := &stubAttendanceRepo{
		byDay: map[string]*attendance.Attendance{},
		listFn: func(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
			gotFilter = filter
			return nil, 0, nil
		},
	}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	_, _, err := svc.ListAttendance(authedCtx(t, "user-5", "MANAGER", "emp-5"), attendance.AttendanceFilter{})

	require.NoError(t, err)
	require.NotNil(t, gotFilter.ManagerEmployeeID)
	assert.Equal(t, "emp-5", *gotFilter.ManagerEmployeeID)
}

func TestCheckIn_WithoutEmployeeProfile(t *testing.T) {
	t.Parallel()

	repo := &stubAttendanceRepo{byDay: map[string]*attendance.Attendance{}}
	svc := NewAttendanceService(repo, &stubEmployeeRepo{})

	_, err := svc.CheckIn(authedCtx(t, "admin-1", "ADMIN_RH", ""), attendance.RecordRequest{})

	assert.ErrorIs(t, err, attendance.ErrNoEmployeeProfile)
}
