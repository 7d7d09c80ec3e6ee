package cron

import (
	"context"
	"testing"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/attendance"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnce(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	defer s.Stop()

	runs := 0
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs++
		return nil
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, 2, runs)
}

type stubAttendanceRepo struct {
	recorded  map[string]*attendance.Attendance
	backfills []attendance.Attendance
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (s *stubAttendanceRepo) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	return record, nil
}

func (s *stubAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return s.recorded[recordKey(employeeID, date)], nil
}

func (s *stubAttendanceRepo) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	return record, nil
}

func (s *stubAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (s *stubAttendanceRepo) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (s *stubAttendanceRepo) ListByDate(ctx context.Context, date time.Time, managerEmployeeID *string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) (int64, error) {
	s.backfills = append(s.backfills, absences...)
	return int64(len(absences)), nil
}

type stubEmployeeRepo struct {
	byID   map[string]employee.Employee
	active []employee.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := s.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
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
	return s.active, nil
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

type stubNotificationService struct {
	queued []notification.CreateNotificationRequest
}

func (s *stubNotificationService) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	s.queued = append(s.queued, req)
	return nil
}

func (s *stubNotificationService) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	s.queued = append(s.queued, reqs...)
	return nil
}

func (s *stubNotificationService) GetNotifications(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (s *stubNotificationService) GetNotification(ctx context.Context, recipientID string, id string) (notification.NotificationResponse, error) {
	return notification.NotificationResponse{}, nil
}

func (s *stubNotificationService) MarkAsRead(ctx context.Context, recipientID string, id string) (notification.NotificationResponse, error) {
	return notification.NotificationResponse{}, nil
}

func (s *stubNotificationService) MarkAllAsRead(ctx context.Context, recipientID string) (notification.MarkAllAsReadResponse, error) {
	return notification.MarkAllAsReadResponse{}, nil
}

func (s *stubNotificationService) Delete(ctx context.Context, recipientID string, id string) error {
	return nil
}

func (s *stubNotificationService) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() { close(ch) }
}

func (s *stubNotificationService) Stop() {}

func TestMarkAbsent_BackfillsMissingDays(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	hired := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	checkIn := day.Add(8 * time.Hour)
	managerID := "emp-9"

	attendanceRepo := &stubAttendanceRepo{recorded: map[string]*attendance.Attendance{
		recordKey("emp-1", day): {ID: "att-1", EmployeeID: "emp-1", Date: day, CheckInTime: &checkIn},
	}}
	employeeRepo := &stubEmployeeRepo{
		byID: map[string]employee.Employee{
			"emp-9": {ID: "emp-9", UserID: "user-9", Status: employee.StatusActif},
		},
		active: []employee.Employee{
			{ID: "emp-1", HireDate: hired, ManagerID: &managerID},
			{ID: "emp-2", HireDate: hired, ManagerID: &managerID},
			// Hired after the target day, must be skipped
			{ID: "emp-3", HireDate: day.AddDate(0, 0, 5)},
		},
	}
	notifications := &stubNotificationService{}

	jobs := NewAttendanceJobs(attendanceRepo, employeeRepo, notifications)

	require.NoError(t, jobs.markAbsentFor(context.Background(), day))

	require.Len(t, attendanceRepo.backfills, 1)
	assert.Equal(t, "emp-2", attendanceRepo.backfills[0].EmployeeID)
	assert.Equal(t, attendance.StatusAbsent, attendanceRepo.backfills[0].Status)

	require.Len(t, notifications.queued, 1)
	assert.Equal(t, "user-9", notifications.queued[0].RecipientID)
}
