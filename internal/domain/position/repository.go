package position

import "context"

type PositionRepository interface {
	GetByID(ctx context.Context, id string) (Position, error)
	Create(ctx context.Context, newPosition Position) (Position, error)
	Update(ctx context.Context, req UpdatePositionRequest) (Position, error)
	List(ctx context.Context, filter PositionFilter) ([]Position, int64, error)
	SetActive(ctx context.Context, id string, active bool) (Position, error)
	Delete(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, id string) (int64, error)
}
