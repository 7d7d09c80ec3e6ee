package absence

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/absence"
	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/pkg/storage"
	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
)

const defaultListLimit = 20

type AbsenceServiceImpl struct {
	absenceRepo     absence.AbsenceRepository
	employeeRepo    employee.EmployeeRepository
	fileStorage     storage.FileStorage
	auditSvc        audit.Service
	notificationSvc notification.Service
}

func NewAbsenceService(
	absenceRepo absence.AbsenceRepository,
	employeeRepo employee.EmployeeRepository,
	fileStorage storage.FileStorage,
	auditSvc audit.Service,
	notificationSvc notification.Service,
) absence.Service {
	return &AbsenceServiceImpl{
		absenceRepo:     absenceRepo,
		employeeRepo:    employeeRepo,
		fileStorage:     fileStorage,
		auditSvc:        auditSvc,
		notificationSvc: notificationSvc,
	}
}

// Declare implements absence.Service. Managers may only declare for
// their direct reports; admin RH for anyone.
func (s *AbsenceServiceImpl) Declare(ctx context.Context, req absence.DeclareAbsenceRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if !caller.CanProcessRequests() {
		return absence.AbsenceResponse{}, absence.ErrUnauthorized
	}

	target, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if !caller.IsAdminRH() {
		if caller.EmployeeID == nil {
			return absence.AbsenceResponse{}, absence.ErrNoEmployeeProfile
		}
		isManager, err := s.employeeRepo.IsManagerOf(ctx, *caller.EmployeeID, target.ID)
		if err != nil {
			return absence.AbsenceResponse{}, err
		}
		if !isManager {
			return absence.AbsenceResponse{}, absence.ErrUnauthorized
		}
	}

	date, _ := validator.IsValidDate(req.AbsenceDate)

	exists, err := s.absenceRepo.ExistsByEmployeeAndDate(ctx, target.ID, date)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if exists {
		return absence.AbsenceResponse{}, absence.ErrAbsenceExists
	}

	created, err := s.absenceRepo.Create(ctx, absence.Absence{
		EmployeeID:          target.ID,
		AbsenceDate:         date,
		Type:                absence.Type(req.Type),
		Reason:              req.Reason,
		DeclaredBy:          caller.UserID,
		JustificationStatus: absence.JustificationNonFourni,
	})
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionCreate,
		EntityType: "absence",
		EntityID:   &created.ID,
		NewValues: map[string]interface{}{
			"employee_id":  created.EmployeeID,
			"absence_date": req.AbsenceDate,
			"absence_type": string(created.Type),
		},
	})

	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: target.UserID,
		Type:        notification.TypeSystem,
		Title:       "Absence déclarée",
		Message: fmt.Sprintf(
			"Une absence a été déclarée pour vous le %s. Merci de fournir un justificatif.",
			req.AbsenceDate,
		),
		ReferenceType: refType(notification.RefAbsence),
		ReferenceID:   &created.ID,
	})

	return created.ToResponse(), nil
}

// SubmitJustification implements absence.Service. Only the absent
// employee can justify, and only once.
func (s *AbsenceServiceImpl) SubmitJustification(ctx context.Context, req absence.SubmitJustificationRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if caller.EmployeeID == nil {
		return absence.AbsenceResponse{}, absence.ErrNoEmployeeProfile
	}

	existing, err := s.absenceRepo.GetByID(ctx, req.AbsenceID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if existing.EmployeeID != *caller.EmployeeID {
		return absence.AbsenceResponse{}, absence.ErrNotAbsenceOwner
	}
	if existing.JustificationStatus != absence.JustificationNonFourni {
		return absence.AbsenceResponse{}, absence.ErrAlreadyJustified
	}

	var fileURL *string
	var filePath string
	if req.File != nil && req.FileHeader != nil {
		filePath = fmt.Sprintf("justifications/%s/%s", existing.ID, filepath.Base(req.FileHeader.Filename))
		url, err := s.fileStorage.Upload(ctx, req.File, filePath, req.FileHeader.Header.Get("Content-Type"))
		if err != nil {
			return absence.AbsenceResponse{}, fmt.Errorf("failed to store justification file: %w", err)
		}
		fileURL = &url
	}

	updated, err := s.absenceRepo.SubmitJustification(ctx, existing.ID, fileURL, req.Comment, time.Now().UTC())
	if err != nil {
		if filePath != "" {
			if delErr := s.fileStorage.Delete(ctx, filePath); delErr != nil {
				slog.Error("failed to clean up orphaned justification file", "path", filePath, "error", delErr)
			}
		}
		return absence.AbsenceResponse{}, err
	}

	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: existing.DeclaredBy,
		Type:        notification.TypeJustificationSubmitted,
		Title:       "Justificatif soumis",
		Message: fmt.Sprintf(
			"Un justificatif a été soumis pour l'absence du %s.",
			existing.AbsenceDate.Format("2006-01-02"),
		),
		ReferenceType: refType(notification.RefAbsence),
		ReferenceID:   &updated.ID,
	})

	return updated.ToResponse(), nil
}

// ProcessJustification implements absence.Service.
func (s *AbsenceServiceImpl) ProcessJustification(ctx context.Context, req absence.ProcessJustificationRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if !caller.CanProcessRequests() {
		return absence.AbsenceResponse{}, absence.ErrUnauthorized
	}

	existing, err := s.absenceRepo.GetByID(ctx, req.AbsenceID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if !caller.IsAdminRH() {
		if caller.EmployeeID == nil {
			return absence.AbsenceResponse{}, absence.ErrNoEmployeeProfile
		}
		isManager, err := s.employeeRepo.IsManagerOf(ctx, *caller.EmployeeID, existing.EmployeeID)
		if err != nil {
			return absence.AbsenceResponse{}, err
		}
		if !isManager {
			return absence.AbsenceResponse{}, absence.ErrUnauthorized
		}
	}

	status := absence.JustificationStatus(req.Decision)

	var rejectionReason *string
	if status == absence.JustificationRefuse {
		rejectionReason = req.RejectionReason
		if rejectionReason == nil || *rejectionReason == "" {
			fallback := absence.DefaultRejectionReason
			rejectionReason = &fallback
		}
	}

	updated, err := s.absenceRepo.ProcessJustification(ctx, existing.ID, status, caller.UserID, rejectionReason, time.Now().UTC())
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionProcessAbsence,
		EntityType: "absence",
		EntityID:   &updated.ID,
		OldValues:  map[string]interface{}{"justification_status": string(existing.JustificationStatus)},
		NewValues:  map[string]interface{}{"justification_status": string(updated.JustificationStatus)},
	})

	target, err := s.employeeRepo.GetByID(ctx, existing.EmployeeID)
	if err != nil {
		slog.Error("failed to load employee for justification notification", "employee_id", existing.EmployeeID, "error", err)
		return updated.ToResponse(), nil
	}

	notifType := notification.TypeJustificationApproved
	title := "Justificatif validé"
	message := fmt.Sprintf("Votre justificatif pour l'absence du %s a été validé.", existing.AbsenceDate.Format("2006-01-02"))
	if status == absence.JustificationRefuse {
		notifType = notification.TypeJustificationRejected
		title = "Justificatif refusé"
		message = fmt.Sprintf(
			"Votre justificatif pour l'absence du %s a été refusé. Raison : %s",
			existing.AbsenceDate.Format("2006-01-02"), *rejectionReason,
		)
	}

	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:   target.UserID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		ReferenceType: refType(notification.RefAbsence),
		ReferenceID:   &updated.ID,
	})

	return updated.ToResponse(), nil
}

// Get implements absence.Service. Employees only see their own
// absences; managers their direct reports'.
func (s *AbsenceServiceImpl) Get(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	found, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if !caller.IsAdminRH() {
		if caller.EmployeeID == nil {
			return absence.AbsenceResponse{}, absence.ErrNoEmployeeProfile
		}
		if found.EmployeeID != *caller.EmployeeID {
			if !caller.IsManager() {
				return absence.AbsenceResponse{}, absence.ErrUnauthorized
			}
			isManager, err := s.employeeRepo.IsManagerOf(ctx, *caller.EmployeeID, found.EmployeeID)
			if err != nil {
				return absence.AbsenceResponse{}, err
			}
			if !isManager {
				return absence.AbsenceResponse{}, absence.ErrUnauthorized
			}
		}
	}

	return found.ToResponse(), nil
}

// List implements absence.Service.
func (s *AbsenceServiceImpl) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.AbsenceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case caller.IsAdminRH():
		// unrestricted
	case caller.IsManager():
		if caller.EmployeeID == nil {
			return nil, 0, absence.ErrNoEmployeeProfile
		}
		filter.ManagerEmployeeID = caller.EmployeeID
	default:
		if caller.EmployeeID == nil {
			return nil, 0, absence.ErrNoEmployeeProfile
		}
		filter.EmployeeID = caller.EmployeeID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultListLimit
	}

	absences, total, err := s.absenceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]absence.AbsenceResponse, 0, len(absences))
	for i := range absences {
		responses = append(responses, absences[i].ToResponse())
	}

	return responses, total, nil
}

func refType(rt notification.ReferenceType) *notification.ReferenceType {
	return &rt
}
