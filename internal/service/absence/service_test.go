package absence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/absence"
	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
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

type stubAbsenceRepo struct {
	createFn  func(ctx context.Context, newAbsence absence.Absence) (absence.Absence, error)
	getByIDFn func(ctx context.Context, id string) (absence.Absence, error)
	existsFn  func(ctx context.Context, employeeID string, date time.Time) (bool, error)
	submitFn  func(ctx context.Context, id string, fileURL *string, comment *string, submittedAt time.Time) (absence.Absence, error)
	processFn func(ctx context.Context, id string, status absence.JustificationStatus, processedBy string, rejectionReason *string, processedAt time.Time) (absence.Absence, error)
}

func (s *stubAbsenceRepo) Create(ctx context.Context, newAbsence absence.Absence) (absence.Absence, error) {
	return s.createFn(ctx, newAbsence)
}

func (s *stubAbsenceRepo) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubAbsenceRepo) ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return s.existsFn(ctx, employeeID, date)
}

func (s *stubAbsenceRepo) SubmitJustification(ctx context.Context, id string, fileURL *string, comment *string, submittedAt time.Time) (absence.Absence, error) {
	return s.submitFn(ctx, id, fileURL, comment, submittedAt)
}

func (s *stubAbsenceRepo) ProcessJustification(ctx context.Context, id string, status absence.JustificationStatus, processedBy string, rejectionReason *string, processedAt time.Time) (absence.Absence, error) {
	return s.processFn(ctx, id, status, processedBy, rejectionReason, processedAt)
}

func (s *stubAbsenceRepo) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.Absence, int64, error) {
	return nil, 0, nil
}

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
	managerOf bool
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

func newService(absenceRepo *stubAbsenceRepo, employeeRepo *stubEmployeeRepo, notifications *stubNotificationService) absence.Service {
	return NewAbsenceService(absenceRepo, employeeRepo, nil, &stubAuditService{}, notifications)
}

func TestDeclare_RejectsDuplicateDay(t *testing.T) {
	t.Parallel()

	absenceRepo := &stubAbsenceRepo{
		existsFn: func(ctx context.Context, employeeID string, date time.Time) (bool, error) {
			return true, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1"},
	}}

	svc := newService(absenceRepo, employeeRepo, &stubNotificationService{})

	_, err := svc.Declare(authedCtx(t, "admin-1", "ADMIN_RH", ""), absence.DeclareAbsenceRequest{
		EmployeeID:  "emp-1",
		AbsenceDate: "2026-03-02",
		Type:        "MALADIE",
	})

	assert.ErrorIs(t, err, absence.ErrAbsenceExists)
}

func TestDeclare_ManagerOutsideTeamIsForbidden(t *testing.T) {
	t.Parallel()

	employeeRepo := &stubEmployeeRepo{
		employees: map[string]employee.Employee{"emp-1": {ID: "emp-1", UserID: "user-1"}},
		managerOf: false,
	}

	svc := newService(&stubAbsenceRepo{}, employeeRepo, &stubNotificationService{})

	_, err := svc.Declare(authedCtx(t, "user-5", "MANAGER", "emp-5"), absence.DeclareAbsenceRequest{
		EmployeeID:  "emp-1",
		AbsenceDate: "2026-03-02",
		Type:        "PERSONNEL",
	})

	assert.ErrorIs(t, err, absence.ErrUnauthorized)
}

func TestDeclare_NotifiesEmployee(t *testing.T) {
	t.Parallel()

	absenceRepo := &stubAbsenceRepo{
		existsFn: func(ctx context.Context, employeeID string, date time.Time) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, newAbsence absence.Absence) (absence.Absence, error) {
			newAbsence.ID = "abs-1"
			return newAbsence, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1"},
	}}
	notifications := &stubNotificationService{}

	svc := newService(absenceRepo, employeeRepo, notifications)

	created, err := svc.Declare(authedCtx(t, "admin-1", "ADMIN_RH", ""), absence.DeclareAbsenceRequest{
		EmployeeID:  "emp-1",
		AbsenceDate: "2026-03-02",
		Type:        "NON_JUSTIFIE",
	})

	require.NoError(t, err)
	assert.Equal(t, string(absence.JustificationNonFourni), created.JustificationStatus)
	require.Len(t, notifications.queued, 1)
	assert.Equal(t, "user-1", notifications.queued[0].RecipientID)
}

func TestSubmitJustification_OnlyOwner(t *testing.T) {
	t.Parallel()

	absenceRepo := &stubAbsenceRepo{
		getByIDFn: func(ctx context.Context, id string) (absence.Absence, error) {
			return absence.Absence{ID: id, EmployeeID: "emp-1", JustificationStatus: absence.JustificationNonFourni}, nil
		},
	}

	svc := newService(absenceRepo, &stubEmployeeRepo{}, &stubNotificationService{})

	comment := "J'étais malade"
	_, err := svc.SubmitJustification(authedCtx(t, "user-2", "EMPLOYEE", "emp-2"), absence.SubmitJustificationRequest{
		AbsenceID: "abs-1",
		Comment:   &comment,
	})

	assert.ErrorIs(t, err, absence.ErrNotAbsenceOwner)
}

func TestSubmitJustification_OnlyOnce(t *testing.T) {
	t.Parallel()

	absenceRepo := &stubAbsenceRepo{
		getByIDFn: func(ctx context.Context, id string) (absence.Absence, error) {
			return absence.Absence{ID: id, EmployeeID: "emp-1", JustificationStatus: absence.JustificationEnAttente}, nil
		},
	}

	svc := newService(absenceRepo, &stubEmployeeRepo{}, &stubNotificationService{})

	comment := "encore"
	_, err := svc.SubmitJustification(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), absence.SubmitJustificationRequest{
		AbsenceID: "abs-1",
		Comment:   &comment,
	})

	assert.ErrorIs(t, err, absence.ErrAlreadyJustified)
}

func TestSubmitJustification_NotifiesDeclarer(t *testing.T) {
	t.Parallel()

	absenceRepo := &stubAbsenceRepo{
		getByIDFn: func(ctx context.Context, id string) (absence.Absence, error) {
			return absence.Absence{
				ID:                  id,
				EmployeeID:          "emp-1",
				DeclaredBy:          "user-9",
				AbsenceDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				JustificationStatus: absence.JustificationNonFourni,
			}, nil
		},
		submitFn: func(ctx context.Context, id string, fileURL *string, comment *string, submittedAt time.Time) (absence.Absence, error) {
			return absence.Absence{ID: id, EmployeeID: "emp-1", JustificationStatus: absence.JustificationEnAttente}, nil
		},
	}
	notifications := &stubNotificationService{}

	svc := newService(absenceRepo, &stubEmployeeRepo{}, notifications)

	comment := "Certificat médical à suivre"
	updated, err := svc.SubmitJustification(authedCtx(t, "user-1", "EMPLOYEE", "emp-1"), absence.SubmitJustificationRequest{
		AbsenceID: "abs-1",
		Comment:   &comment,
	})

	require.NoError(t, err)
	assert.Equal(t, string(absence.JustificationEnAttente), updated.JustificationStatus)
	require.Len(t, notifications.queued, 1)
	assert.Equal(t, "user-9", notifications.queued[0].RecipientID)
	assert.Equal(t, notification.TypeJustificationSubmitted, notifications.queued[0].Type)
}

func TestProcessJustification_SucceedsWhenNotificationFails(t *testing.T) {
	t.Parallel()

	var statusWritten *absence.JustificationStatus
	absenceRepo := &stubAbsenceRepo{
		getByIDFn: func(ctx context.Context, id string) (absence.Absence, error) {
			return absence.Absence{
				ID:                  id,
				EmployeeID:          "emp-1",
				AbsenceDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				JustificationStatus: absence.JustificationEnAttente,
			}, nil
		},
		processFn: func(ctx context.Context, id string, status absence.JustificationStatus, processedBy string, rejectionReason *string, processedAt time.Time) (absence.Absence, error) {
			statusWritten = &status
			return absence.Absence{ID: id, EmployeeID: "emp-1", JustificationStatus: status}, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1"},
	}}
	notifications := &stubNotificationService{queueErr: errors.New("queue closed")}

	svc := newService(absenceRepo, employeeRepo, notifications)

	processed, err := svc.ProcessJustification(authedCtx(t, "admin-1", "ADMIN_RH", ""), absence.ProcessJustificationRequest{
		AbsenceID: "abs-1",
		Decision:  "VALIDE",
	})

	require.NoError(t, err)
	assert.Equal(t, string(absence.JustificationValide), processed.JustificationStatus)
	require.NotNil(t, statusWritten)
	assert.Equal(t, absence.JustificationValide, *statusWritten)
}

func TestProcessJustification_RefuseDefaultsReason(t *testing.T) {
	t.Parallel()

	var gotReason *string
	absenceRepo := &stubAbsenceRepo{
		getByIDFn: func(ctx context.Context, id string) (absence.Absence, error) {
			return absence.Absence{
				ID:                  id,
				EmployeeID:          "emp-1",
				AbsenceDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				JustificationStatus: absence.JustificationEnAttente,
			}, nil
		},
		processFn: func(ctx context.Context, id string, status absence.JustificationStatus, processedBy string, rejectionReason *string, processedAt time.Time) (absence.Absence, error) {
			gotReason = rejectionReason
			return absence.Absence{ID: id, EmployeeID: "emp-1", JustificationStatus: status, RejectionReason: rejectionReason}, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: "user-1"},
	}}
	notifications := &stubNotificationService{}

	svc := newService(absenceRepo, employeeRepo, notifications)

	processed, err := svc.ProcessJustification(authedCtx(t, "admin-1", "ADMIN_RH", ""), absence.ProcessJustificationRequest{
		AbsenceID: "abs-1",
		Decision:  "REFUSE",
	})

	require.NoError(t, err)
	assert.Equal(t, string(absence.JustificationRefuse), processed.JustificationStatus)
	require.NotNil(t, gotReason)
	assert.Equal(t, absence.DefaultRejectionReason, *gotReason)

	require.Len(t, notifications.queued, 1)
	assert.Equal(t, notification.TypeJustificationRejected, notifications.queued[0].Type)
}
