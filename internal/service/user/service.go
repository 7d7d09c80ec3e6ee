package user

import (
	"context"

	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
)

type UserServiceImpl struct {
	userRepo        user.UserRepository
	auditSvc        audit.Service
	notificationSvc notification.Service
}

func NewUserService(
	userRepo user.UserRepository,
	auditSvc audit.Service,
	notificationSvc notification.Service,
) user.Service {
	return &UserServiceImpl{
		userRepo:        userRepo,
		auditSvc:        auditSvc,
		notificationSvc: notificationSvc,
	}
}

// List implements user.Service.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	return responses, total, nil
}

// Get implements user.Service.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return found.ToResponse(), nil
}

// Update implements user.Service.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	before, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.Update(ctx, req)
	if err != nil {
		return user.UserResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionUpdate,
		EntityType: "user",
		EntityID:   &updated.ID,
		OldValues: map[string]interface{}{
			"email":     before.Email,
			"role":      string(before.Role),
			"is_active": before.IsActive,
		},
		NewValues: map[string]interface{}{
			"email":     updated.Email,
			"role":      string(updated.Role),
			"is_active": updated.IsActive,
		},
	})

	return updated.ToResponse(), nil
}

// ToggleStatus implements user.Service.
func (s *UserServiceImpl) ToggleStatus(ctx context.Context, id string) (user.UserResponse, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	newState := !target.IsActive
	if !newState && caller.UserID == target.ID {
		return user.UserResponse{}, user.ErrSelfDeactivation
	}

	if err := s.userRepo.SetActive(ctx, id, newState); err != nil {
		return user.UserResponse{}, err
	}
	target.IsActive = newState

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionToggleStatus,
		EntityType: "user",
		EntityID:   &target.ID,
		OldValues:  map[string]interface{}{"is_active": !newState},
		NewValues:  map[string]interface{}{"is_active": newState},
	})

	notifType := notification.TypeAccountActivated
	title := "Compte réactivé"
	message := "Votre compte a été réactivé."
	if !newState {
		notifType = notification.TypeAccountDeactivated
		title = "Compte désactivé"
		message = "Votre compte a été désactivé. Contactez le service RH pour plus d'informations."
	}

	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:    target.ID,
		Type:           notifType,
		Title:          title,
		Message:        message,
		RecipientEmail: target.Email,
		ReferenceType:  refType(notification.RefUser),
		ReferenceID:    &target.ID,
	})

	return target.ToResponse(), nil
}

// Delete implements user.Service. Accounts are deactivated, never
// hard-deleted, so audit history stays attached.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	if caller.UserID == id {
		return user.ErrSelfDeactivation
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if target.IsActive {
		if err := s.userRepo.SetActive(ctx, id, false); err != nil {
			return err
		}
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionDelete,
		EntityType: "user",
		EntityID:   &target.ID,
		OldValues:  map[string]interface{}{"is_active": target.IsActive},
		NewValues:  map[string]interface{}{"is_active": false},
	})

	return nil
}

func refType(rt notification.ReferenceType) *notification.ReferenceType {
	return &rt
}
