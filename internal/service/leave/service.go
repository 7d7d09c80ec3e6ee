package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/leave"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
)

const defaultListLimit = 20

type LeaveServiceImpl struct {
	leaveRepo       leave.LeaveRequestRepository
	employeeRepo    employee.EmployeeRepository
	auditSvc        audit.Service
	notificationSvc notification.Service
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	auditSvc audit.Service,
	notificationSvc notification.Service,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:       leaveRepo,
		employeeRepo:    employeeRepo,
		auditSvc:        auditSvc,
		notificationSvc: notificationSvc,
	}
}

// CreateLeaveRequest implements leave.LeaveService. Overlap against
// pending or approved requests is inclusive on both bounds.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if caller.EmployeeID == nil {
		return leave.LeaveRequestResponse{}, leave.ErrNoEmployeeProfile
	}

	requester, err := s.employeeRepo.GetByID(ctx, *caller.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	overlapping, err := s.leaveRepo.CheckOverlapping(ctx, requester.ID, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if overlapping {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingRequest
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:    requester.ID,
		StartDate:     start,
		EndDate:       end,
		Type:          leave.Type(req.Type),
		Reason:        req.Reason,
		DaysRequested: req.DaysRequested,
		Status:        leave.StatusEnAttente,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if requester.ManagerID != nil {
		s.notifyManager(ctx, *requester.ManagerID, requester.FullName(), created)
	}

	return created.ToResponse(), nil
}

func (s *LeaveServiceImpl) notifyManager(ctx context.Context, managerEmployeeID, requesterName string, created leave.LeaveRequest) {
	manager, err := s.employeeRepo.GetByID(ctx, managerEmployeeID)
	if err != nil {
		slog.Error("failed to load manager for leave notification", "manager_id", managerEmployeeID, "error", err)
		return
	}

	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: manager.UserID,
		Type:        notification.TypeLeaveRequest,
		Title:       "Nouvelle demande de congé",
		Message: fmt.Sprintf(
			"%s a soumis une demande de congé du %s au %s.",
			requesterName,
			created.StartDate.Format("2006-01-02"),
			created.EndDate.Format("2006-01-02"),
		),
		ReferenceType: refType(notification.RefLeaveRequest),
		ReferenceID:   &created.ID,
	})
}

// ProcessLeaveRequest implements leave.LeaveService. Only the direct
// manager or admin RH may decide, and only while still pending.
func (s *LeaveServiceImpl) ProcessLeaveRequest(ctx context.Context, req leave.ProcessLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	existing, err := s.leaveRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !caller.IsAdminRH() {
		if caller.EmployeeID == nil {
			return leave.LeaveRequestResponse{}, leave.ErrNoEmployeeProfile
		}
		isManager, err := s.employeeRepo.IsManagerOf(ctx, *caller.EmployeeID, existing.EmployeeID)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if !isManager {
			return leave.LeaveRequestResponse{}, leave.ErrNotDirectManager
		}
	}

	status := leave.Status(req.Decision)

	if status == leave.StatusApprouve {
		if err := s.ensureNoApprovedOverlap(ctx, existing); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}

	var rejectionReason *string
	if status == leave.StatusRefuse {
		rejectionReason = req.RejectionReason
		if rejectionReason == nil || *rejectionReason == "" {
			fallback := "Aucune raison spécifiée"
			rejectionReason = &fallback
		}
	}

	updated, err := s.leaveRepo.UpdateStatus(ctx, existing.ID, status, caller.UserID, rejectionReason, time.Now().UTC())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if status == leave.StatusApprouve && updated.Type == leave.TypeAnnuel {
		if err := s.employeeRepo.AdjustLeaveBalance(ctx, updated.EmployeeID, updated.DaysRequested.Neg()); err != nil {
			slog.Error("failed to deduct annual leave balance",
				"employee_id", updated.EmployeeID,
				"leave_request_id", updated.ID,
				"error", err,
			)
		}
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionProcessLeave,
		EntityType: "leave_request",
		EntityID:   &updated.ID,
		OldValues:  map[string]interface{}{"status": string(existing.Status)},
		NewValues:  map[string]interface{}{"status": string(updated.Status)},
	})

	s.notifyOutcome(ctx, updated, rejectionReason)

	return updated.ToResponse(), nil
}

// ensureNoApprovedOverlap re-checks the approved window right before
// approval. Creation rejects overlaps against pending and approved
// requests, but two requests created concurrently can both pass that
// check.
func (s *LeaveServiceImpl) ensureNoApprovedOverlap(ctx context.Context, pending leave.LeaveRequest) error {
	approved := string(leave.StatusApprouve)
	others, _, err := s.leaveRepo.List(ctx, leave.LeaveRequestFilter{
		EmployeeID: &pending.EmployeeID,
		Status:     &approved,
		Page:       1,
		Limit:      200,
	})
	if err != nil {
		return err
	}

	for i := range others {
		if others[i].ID == pending.ID {
			continue
		}
		if others[i].Overlaps(pending.StartDate, pending.EndDate) {
			return leave.ErrOverlappingRequest
		}
	}

	return nil
}

func (s *LeaveServiceImpl) notifyOutcome(ctx context.Context, processed leave.LeaveRequest, rejectionReason *string) {
	requester, err := s.employeeRepo.GetByID(ctx, processed.EmployeeID)
	if err != nil {
		slog.Error("failed to load employee for leave outcome notification", "employee_id", processed.EmployeeID, "error", err)
		return
	}

	notifType := notification.TypeLeaveApproved
	title := "Demande de congé approuvée"
	message := fmt.Sprintf(
		"Votre demande de congé du %s au %s a été approuvée.",
		processed.StartDate.Format("2006-01-02"),
		processed.EndDate.Format("2006-01-02"),
	)
	if processed.Status == leave.StatusRefuse {
		notifType = notification.TypeLeaveRejected
		title = "Demande de congé refusée"
		message = fmt.Sprintf(
			"Votre demande de congé du %s au %s a été refusée. Raison : %s",
			processed.StartDate.Format("2006-01-02"),
			processed.EndDate.Format("2006-01-02"),
			*rejectionReason,
		)
	}

	req := notification.CreateNotificationRequest{
		RecipientID:   requester.UserID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		ReferenceType: refType(notification.RefLeaveRequest),
		ReferenceID:   &processed.ID,
	}
	if requester.Email != nil {
		req.RecipientEmail = *requester.Email
	}

	_ = s.notificationSvc.QueueNotification(ctx, req)
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	found, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !caller.IsAdminRH() {
		if caller.EmployeeID == nil {
			return leave.LeaveRequestResponse{}, leave.ErrNoEmployeeProfile
		}
		if found.EmployeeID != *caller.EmployeeID {
			if !caller.IsManager() {
				return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
			}
			isManager, err := s.employeeRepo.IsManagerOf(ctx, *caller.EmployeeID, found.EmployeeID)
			if err != nil {
				return leave.LeaveRequestResponse{}, err
			}
			if !isManager {
				return leave.LeaveRequestResponse{}, leave.ErrUnauthorized
			}
		}
	}

	return found.ToResponse(), nil
}

// ListLeaveRequests implements leave.LeaveService. Three-tier
// visibility: employees see their own, managers their direct reports,
// admin RH everyone.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
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
			return nil, 0, leave.ErrNoEmployeeProfile
		}
		filter.ManagerEmployeeID = caller.EmployeeID
	default:
		if caller.EmployeeID == nil {
			return nil, 0, leave.ErrNoEmployeeProfile
		}
		filter.EmployeeID = caller.EmployeeID
	}

	return s.list(ctx, filter)
}

// ListMyLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	if caller.EmployeeID == nil {
		return nil, 0, leave.ErrNoEmployeeProfile
	}

	filter.EmployeeID = caller.EmployeeID
	filter.ManagerEmployeeID = nil

	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultListLimit
	}

	requests, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse())
	}

	return responses, total, nil
}

func refType(rt notification.ReferenceType) *notification.ReferenceType {
	return &rt
}
