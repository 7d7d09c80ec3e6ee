package position

import "context"

// Service defines business logic for position management
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	Get(ctx context.Context, id string) (PositionResponse, error)
	List(ctx context.Context, filter PositionFilter) ([]PositionResponse, int64, error)
	Update(ctx context.Context, req UpdatePositionRequest) (PositionResponse, error)
	ToggleStatus(ctx context.Context, id string) (PositionResponse, error)
	Delete(ctx context.Context, id string) error
}
