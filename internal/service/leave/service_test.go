package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/leave"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
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

type stubLeaveRepo struct {
	createFn      func(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error)
	getByIDFn     func(ctx context.Context, id string) (leave.LeaveRequest, error)
	overlappingFn func(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	updateFn      func(ctx context.Context, id string, status leave.Status, processedBy string, rejectionReason *string, processedAt time.Time) (leave.LeaveRequest, error)
	listFn        func(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error)
}

func (s *stubLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	return s.createFn(ctx, request)
}

func (s *stubLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubLeaveRepo) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	return s.overlappingFn(ctx, employeeID, start, end)
}

func (s *stubLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status, processedBy string, rejectionReason *string, processedAt time.Time) (leave.LeaveRequest, error) {
	return s.updateFn(ctx, id, status, processedBy, rejectionReason, processedAt)
}

func (s *stubLeaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	if s.listFn == nil {
		return nil, 0, nil
	}
	return s.listFn(ctx, filter)
}

type stubEmployeeRepo struct {
	employees       map[string]employee.Employee
	managerOf       bool
	balanceAdjusted []decimal.Decimal
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := s.employees[id]
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
	return nil, nil
}

func (s *stubEmployeeRepo) SetStatus(ctx context.Context, id string, status employee.Status) error {
	return nil
}

func (s *stubEmployeeRepo) AdjustLeaveBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	s.balanceAdjusted = append(s.balanceAdjusted, delta)
	return nil
}

func (s *stubEmployeeRepo) IsManagerOf(ctx context.Context, managerEmployeeID, employeeID string) (bool, error) {
	return s.managerOf, nil
}

type stubAuditService struct {
	entries []audit.Entry
}

func (s *stubAuditService) Log(ctx context.Context, entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func (s *stubAuditService) List(ctx context.Context, filter audit.Filter) ([]audit.AuditLogResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubAuditService) Stop() {}

type stubNotificationService struct {
	queued   []notification.CreateNotificationRequest
	queueErr error
}

func (s *stubNotificationService) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if s.queueErr != nil {
		return s.queueErr
	}
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

func managerID(id string) *string {
	return &id
}

func TestCreateLeaveRequest_RejectsOverlap(t *testing.T) {
	t.Parallel()

	leaveRepo := &stubLeaveRepo{
		overlappingFn: func(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
			return true, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1", FirstName: "Nadia", LastName: "Berrada"},
	}}

	svc := NewLeaveService(leaveRepo, employeeRepo, &stubAuditService{}, &stubNotificationService{})

	_, err := svc.CreateLeaveRequest(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), leave.CreateLeaveRequestRequest{
		StartDate:     "2026-02-05",
		EndDate:       "2026-02-15",
		Type:          "ANNUEL",
		DaysRequested: decimal.NewFromInt(8),
	})

	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestCreateLeaveRequest_NotifiesManager(t *testing.T) {
	t.Parallel()

	leaveRepo := &stubLeaveRepo{
		overlappingFn: func(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
			request.ID = "lr-1"
			return request, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1", FirstName: "Nadia", LastName: "Berrada", ManagerID: managerID("emp-9")},
		"emp-9": {ID: "emp-9", UserID: "user-9", FirstName: "Karim", LastName: "Alami"},
	}}
	notifications := &stubNotificationService{}

	svc := NewLeaveService(leaveRepo, employeeRepo, &stubAuditService{}, notifications)

	created, err := svc.CreateLeaveRequest(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), leave.CreateLeaveRequestRequest{
		StartDate:     "2026-02-01",
		EndDate:       "2026-02-10",
		Type:          "ANNUEL",
		DaysRequested: decimal.NewFromInt(8),
	})

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusEnAttente), created.Status)
	require.Len(t, notifications.queued, 1)
	assert.Equal(t, "user-9", notifications.queued[0].RecipientID)
	assert.Equal(t, notification.TypeLeaveRequest, notifications.queued[0].Type)
}

func TestProcessLeaveRequest_RequiresDirectManager(t *testing.T) {
	t.Parallel()

	leaveRepo := &stubLeaveRepo{
		getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
			return leave.LeaveRequest{ID: id, EmployeeID: "emp-1", Status: leave.StatusEnAttente}, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{managerOf: false}

	svc := NewLeaveService(leaveRepo, employeeRepo, &stubAuditService{}, &stubNotificationService{})

	_, err := svc.ProcessLeaveRequest(authedCtx(t, "user-5", "MANAGER", "emp-5"), leave.ProcessLeaveRequestRequest{
		RequestID: "lr-1",
		Decision:  "APPROUVE",
	})

	assert.ErrorIs(t, err, leave.ErrNotDirectManager)
}

func TestProcessLeaveRequest_ApproveDeductsAnnualBalance(t *testing.T) {
	t.Parallel()

	days := decimal.NewFromInt(5)
	leaveRepo := &stubLeaveRepo{
		getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
			return leave.LeaveRequest{ID: id, EmployeeID: "emp-1", Status: leave.StatusEnAttente}, nil
		},
		updateFn: func(ctx context.Context, id string, status leave.Status, processedBy string, rejectionReason *string, processedAt time.Time) (leave.LeaveRequest, error) {
			return leave.LeaveRequest{
				ID:            id,
				EmployeeID:    "emp-1",
				Type:          leave.TypeAnnuel,
				DaysRequested: days,
				Status:        status,
				ProcessedBy:   &processedBy,
				ProcessedAt:   &processedAt,
			}, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1", FirstName: "Nadia", LastName: "Berrada"},
	}}
	auditSvc := &stubAuditService{}
	notifications := &stubNotificationService{}

	svc := NewLeaveService(leaveRepo, employeeRepo, auditSvc, notifications)

	processed, err := svc.ProcessLeaveRequest(authedCtx(t, "admin-1", "ADMIN_RH", ""), leave.ProcessLeaveRequestRequest{
		RequestID: "lr-1",
		Decision:  "APPROUVE",
	})

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApprouve), processed.Status)

	require.Len(t, employeeRepo.balanceAdjusted, 1)
	assert.True(t, employeeRepo.balanceAdjusted[0].Equal(days.Neg()))

	require.Len(t, auditSvc.entries, 1)
	assert.Equal(t, audit.ActionProcessLeave, auditSvc.entries[0].Action)

	require.Len(t, notifications.queued, 1)
	assert.Equal(t, notification.TypeLeaveApproved, notifications.queued[0].Type)
}

func TestProcessLeaveRequest_ApproveRejectsApprovedOverlap(t *testing.T) {
	t.Parallel()

	leaveRepo := &stubLeaveRepo{
		getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
			return leave.LeaveRequest{
				ID:         id,
				EmployeeID: "emp-1",
				StartDate:  time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC),
				Status:     leave.StatusEnAttente,
			}, nil
		},
		listFn: func(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
			return []leave.LeaveRequest{{
				ID:         "lr-other",
				EmployeeID: "emp-1",
				StartDate:  time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
				Status:     leave.StatusApprouve,
			}}, 1, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1"},
	}}

	svc := NewLeaveService(leaveRepo, employeeRepo, &stubAuditService{}, &stubNotificationService{})

	_, err := svc.ProcessLeaveRequest(authedCtx(t, "admin-1", "ADMIN_RH", ""), leave.ProcessLeaveRequestRequest{
		RequestID: "lr-1",
		Decision:  "APPROUVE",
	})

	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestProcessLeaveRequest_SucceedsWhenNotificationFails(t *testing.T) {
	t.Parallel()

	var statusWritten *leave.Status
	leaveRepo := &stubLeaveRepo{
		getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
			return leave.LeaveRequest{ID: id, EmployeeID: "emp-1", Status: leave.StatusEnAttente}, nil
		},
		updateFn: func(ctx context.Context, id string, status leave.Status, processedBy string, rejectionReason *string, processedAt time.Time) (leave.LeaveRequest, error) {
			statusWritten = &status
			return leave.LeaveRequest{
				ID:         id,
				EmployeeID: "emp-1",
				Type:       leave.TypeMaladie,
				Status:     status,
			}, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1"},
	}}
	notifications := &stubNotificationService{queueErr: errors.New("queue closed")}

	svc := NewLeaveService(leaveRepo, employeeRepo, &stubAuditService{}, notifications)

	processed, err := svc.ProcessLeaveRequest(authedCtx(t, "admin-1", "ADMIN_RH", ""), leave.ProcessLeaveRequestRequest{
		RequestID: "lr-1",
		Decision:  "APPROUVE",
	})

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApprouve), processed.Status)
	require.NotNil(t, statusWritten)
	assert.Equal(t, leave.StatusApprouve, *statusWritten)
}

func TestProcessLeaveRequest_RefuseDefaultsRejectionReason(t *testing.T) {
	t.Parallel()

	var gotReason *string
	leaveRepo := &stubLeaveRepo{
		getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
			return leave.LeaveRequest{ID: id, EmployeeID: "emp-1", Status: leave.StatusEnAttente}, nil
		},
		updateFn: func(ctx context.Context, id string, status leave.Status, processedBy string, rejectionReason *string, processedAt time.Time) (leave.LeaveRequest, error) {
			gotReason = rejectionReason
			return leave.LeaveRequest{
				ID:              id,
				EmployeeID:      "emp-1",
				Type:            leave.TypeMaladie,
				Status:          status,
				RejectionReason: rejectionReason,
			}, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1"},
	}}

	svc := NewLeaveService(leaveRepo, employeeRepo, &stubAuditService{}, &stubNotificationService{})

	_, err := svc.ProcessLeaveRequest(authedCtx(t, "admin-1", "ADMIN_RH", ""), leave.ProcessLeaveRequestRequest{
		RequestID: "lr-1",
		Decision:  "REFUSE",
	})

	require.NoError(t, err)
	require.NotNil(t, gotReason)
	assert.Equal(t, "Aucune raison spécifiée", *gotReason)

	// No annual leave was approved, so the balance stays untouched
	assert.Empty(t, employeeRepo.balanceAdjusted)
}
