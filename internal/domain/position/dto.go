package position

import (
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
)

type PositionResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	HierarchyLevel int       `json:"hierarchy_level"`
	Description    *string   `json:"description,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToResponse converts a Position entity to its API representation
func (p *Position) ToResponse() PositionResponse {
	return PositionResponse{
		ID:             p.ID,
		Title:          p.Title,
		Department:     p.Department,
		HierarchyLevel: p.HierarchyLevel,
		Description:    p.Description,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type CreatePositionRequest struct {
	Title          string  `json:"title"`
	Department     string  `json:"department"`
	HierarchyLevel int     `json:"hierarchy_level"`
	Description    *string `json:"description,omitempty"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.HierarchyLevel < 1 || r.HierarchyLevel > 5 {
		errs = append(errs, validator.ValidationError{
			Field:   "hierarchy_level",
			Message: "hierarchy_level must be between 1 and 5",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePositionRequest struct {
	ID             string  `json:"-"`
	Title          *string `json:"title,omitempty"`
	Department     *string `json:"department,omitempty"`
	HierarchyLevel *int    `json:"hierarchy_level,omitempty"`
	Description    *string `json:"description,omitempty"`
}

func (r *UpdatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}

	if r.HierarchyLevel != nil && (*r.HierarchyLevel < 1 || *r.HierarchyLevel > 5) {
		errs = append(errs, validator.ValidationError{
			Field:   "hierarchy_level",
			Message: "hierarchy_level must be between 1 and 5",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PositionFilter holds the allow-listed query filters for position listing
type PositionFilter struct {
	Department *string
	IsActive   *bool
	Page       int
	Limit      int
}
