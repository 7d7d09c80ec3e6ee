package announcement

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/announcement"
	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
)

const defaultListLimit = 20

type AnnouncementServiceImpl struct {
	announcementRepo announcement.AnnouncementRepository
	employeeRepo     employee.EmployeeRepository
	auditSvc         audit.Service
	notificationSvc  notification.Service
}

func NewAnnouncementService(
	announcementRepo announcement.AnnouncementRepository,
	employeeRepo employee.EmployeeRepository,
	auditSvc audit.Service,
	notificationSvc notification.Service,
) announcement.Service {
	return &AnnouncementServiceImpl{
		announcementRepo: announcementRepo,
		employeeRepo:     employeeRepo,
		auditSvc:         auditSvc,
		notificationSvc:  notificationSvc,
	}
}

// Create implements announcement.Service. Publication fans out one
// notification per targeted active employee.
func (s *AnnouncementServiceImpl) Create(ctx context.Context, req announcement.CreateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	scope := announcement.TargetScope(req.TargetScope)
	if scope == announcement.ScopeSpecificTeam {
		if _, err := s.employeeRepo.GetByID(ctx, *req.TargetTeamManagerID); err != nil {
			return announcement.AnnouncementResponse{}, err
		}
	}

	priority := announcement.PriorityNormal
	if req.Priority != nil {
		priority = announcement.Priority(*req.Priority)
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		parsed, _ := validator.IsValidDateTime(*req.ExpiresAt)
		expiresAt = &parsed
	}

	var targetTeamManagerID *string
	if scope == announcement.ScopeSpecificTeam {
		targetTeamManagerID = req.TargetTeamManagerID
	}

	created, err := s.announcementRepo.Create(ctx, announcement.Announcement{
		Title:               req.Title,
		Content:             req.Content,
		AuthorID:            caller.UserID,
		TargetScope:         scope,
		TargetTeamManagerID: targetTeamManagerID,
		Priority:            priority,
		PublishedAt:         time.Now().UTC(),
		ExpiresAt:           expiresAt,
	})
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionCreate,
		EntityType: "announcement",
		EntityID:   &created.ID,
		NewValues: map[string]interface{}{
			"title":        created.Title,
			"target_scope": string(created.TargetScope),
			"priority":     string(created.Priority),
		},
	})

	s.fanOut(ctx, created)

	return created.ToResponse(), nil
}

// fanOut enumerates recipients by scope and enqueues one notification
// per recipient. Failures are logged, never surfaced.
func (s *AnnouncementServiceImpl) fanOut(ctx context.Context, created announcement.Announcement) {
	var recipients []employee.Employee
	var err error

	switch created.TargetScope {
	case announcement.ScopeAllEmployees:
		recipients, err = s.employeeRepo.GetActive(ctx)
	case announcement.ScopeSpecificTeam:
		recipients, err = s.employeeRepo.GetDirectReports(ctx, *created.TargetTeamManagerID)
	}
	if err != nil {
		slog.Error("failed to enumerate announcement recipients",
			"announcement_id", created.ID,
			"target_scope", string(created.TargetScope),
			"error", err,
		)
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(recipients))
	for i := range recipients {
		if recipients[i].Status != employee.StatusActif {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID:   recipients[i].UserID,
			Type:          notification.TypeAnnouncement,
			Title:         "Nouvelle annonce",
			Message:       created.Title,
			ReferenceType: refType(notification.RefAnnouncement),
			ReferenceID:   &created.ID,
		})
	}
	if len(reqs) == 0 {
		return
	}

	_ = s.notificationSvc.QueueBulkNotification(ctx, reqs)
}

// Get implements announcement.Service.
func (s *AnnouncementServiceImpl) Get(ctx context.Context, id string) (announcement.AnnouncementResponse, error) {
	found, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	return found.ToResponse(), nil
}

// List implements announcement.Service.
func (s *AnnouncementServiceImpl) List(ctx context.Context, filter announcement.AnnouncementFilter) ([]announcement.AnnouncementResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultListLimit
	}

	announcements, total, err := s.announcementRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]announcement.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		responses = append(responses, announcements[i].ToResponse())
	}

	return responses, total, nil
}

// Update implements announcement.Service. Only the author or admin RH
// can modify an announcement.
func (s *AnnouncementServiceImpl) Update(ctx context.Context, req announcement.UpdateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	before, err := s.announcementRepo.GetByID(ctx, req.ID)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	if before.AuthorID != caller.UserID && !caller.IsAdminRH() {
		return announcement.AnnouncementResponse{}, announcement.ErrNotAuthor
	}

	updated, err := s.announcementRepo.Update(ctx, req)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionUpdate,
		EntityType: "announcement",
		EntityID:   &updated.ID,
		OldValues: map[string]interface{}{
			"title":     before.Title,
			"priority":  string(before.Priority),
			"is_active": before.IsActive,
		},
		NewValues: map[string]interface{}{
			"title":     updated.Title,
			"priority":  string(updated.Priority),
			"is_active": updated.IsActive,
		},
	})

	return updated.ToResponse(), nil
}

// Delete implements announcement.Service.
func (s *AnnouncementServiceImpl) Delete(ctx context.Context, id string) error {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	target, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target.AuthorID != caller.UserID && !caller.IsAdminRH() {
		return announcement.ErrNotAuthor
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionDelete,
		EntityType: "announcement",
		EntityID:   &target.ID,
		OldValues: map[string]interface{}{
			"title":        target.Title,
			"target_scope": string(target.TargetScope),
		},
	})

	return nil
}

func refType(rt notification.ReferenceType) *notification.ReferenceType {
	return &rt
}
