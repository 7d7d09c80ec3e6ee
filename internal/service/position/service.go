package position

import (
	"context"

	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/position"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
)

type PositionServiceImpl struct {
	positionRepo position.PositionRepository
	auditSvc     audit.Service
}

func NewPositionService(positionRepo position.PositionRepository, auditSvc audit.Service) position.Service {
	return &PositionServiceImpl{
		positionRepo: positionRepo,
		auditSvc:     auditSvc,
	}
}

// Create implements position.Service.
func (s *PositionServiceImpl) Create(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return position.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, position.Position{
		Title:          req.Title,
		Department:     req.Department,
		HierarchyLevel: req.HierarchyLevel,
		Description:    req.Description,
	})
	if err != nil {
		return position.PositionResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionCreate,
		EntityType: "position",
		EntityID:   &created.ID,
		NewValues: map[string]interface{}{
			"title":           created.Title,
			"department":      created.Department,
			"hierarchy_level": created.HierarchyLevel,
		},
	})

	return created.ToResponse(), nil
}

// Get implements position.Service.
func (s *PositionServiceImpl) Get(ctx context.Context, id string) (position.PositionResponse, error) {
	found, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return found.ToResponse(), nil
}

// List implements position.Service.
func (s *PositionServiceImpl) List(ctx context.Context, filter position.PositionFilter) ([]position.PositionResponse, int64, error) {
	positions, total, err := s.positionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for i := range positions {
		responses = append(responses, positions[i].ToResponse())
	}

	return responses, total, nil
}

// Update implements position.Service.
func (s *PositionServiceImpl) Update(ctx context.Context, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return position.PositionResponse{}, err
	}

	before, err := s.positionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return position.PositionResponse{}, err
	}

	updated, err := s.positionRepo.Update(ctx, req)
	if err != nil {
		return position.PositionResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionUpdate,
		EntityType: "position",
		EntityID:   &updated.ID,
		OldValues: map[string]interface{}{
			"title":           before.Title,
			"department":      before.Department,
			"hierarchy_level": before.HierarchyLevel,
		},
		NewValues: map[string]interface{}{
			"title":           updated.Title,
			"department":      updated.Department,
			"hierarchy_level": updated.HierarchyLevel,
		},
	})

	return updated.ToResponse(), nil
}

// ToggleStatus implements position.Service.
func (s *PositionServiceImpl) ToggleStatus(ctx context.Context, id string) (position.PositionResponse, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return position.PositionResponse{}, err
	}

	before, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}

	updated, err := s.positionRepo.SetActive(ctx, id, !before.IsActive)
	if err != nil {
		return position.PositionResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionToggleStatus,
		EntityType: "position",
		EntityID:   &updated.ID,
		OldValues:  map[string]interface{}{"is_active": before.IsActive},
		NewValues:  map[string]interface{}{"is_active": updated.IsActive},
	})

	return updated.ToResponse(), nil
}

// Delete implements position.Service. Positions still assigned to
// employees cannot be removed.
func (s *PositionServiceImpl) Delete(ctx context.Context, id string) error {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	target, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.positionRepo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return position.ErrPositionInUse
	}

	if err := s.positionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionDelete,
		EntityType: "position",
		EntityID:   &target.ID,
		OldValues: map[string]interface{}{
			"title":      target.Title,
			"department": target.Department,
		},
	})

	return nil
}
