package announcement

import (
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
)

type AnnouncementResponse struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Content             string     `json:"content"`
	AuthorID            string     `json:"author_id"`
	AuthorEmail         *string    `json:"author_email,omitempty"`
	TargetScope         string     `json:"target_scope"`
	TargetTeamManagerID *string    `json:"target_team_manager_id,omitempty"`
	Priority            string     `json:"priority"`
	IsActive            bool       `json:"is_active"`
	PublishedAt         time.Time  `json:"published_at"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToResponse converts an Announcement entity to its API representation
func (a *Announcement) ToResponse() AnnouncementResponse {
	return AnnouncementResponse{
		ID:                  a.ID,
		Title:               a.Title,
		Content:             a.Content,
		AuthorID:            a.AuthorID,
		AuthorEmail:         a.AuthorEmail,
		TargetScope:         string(a.TargetScope),
		TargetTeamManagerID: a.TargetTeamManagerID,
		Priority:            string(a.Priority),
		IsActive:            a.IsActive,
		PublishedAt:         a.PublishedAt,
		ExpiresAt:           a.ExpiresAt,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

type CreateAnnouncementRequest struct {
	Title               string  `json:"title"`
	Content             string  `json:"content"`
	TargetScope         string  `json:"target_scope"`
	TargetTeamManagerID *string `json:"target_team_manager_id,omitempty"`
	Priority            *string `json:"priority,omitempty"`
	ExpiresAt           *string `json:"expires_at,omitempty"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}

	scope := TargetScope(r.TargetScope)
	if scope != ScopeAllEmployees && scope != ScopeSpecificTeam {
		errs = append(errs, validator.ValidationError{
			Field:   "target_scope",
			Message: "target_scope must be ALL_EMPLOYEES or SPECIFIC_TEAM",
		})
	}

	if scope == ScopeSpecificTeam && (r.TargetTeamManagerID == nil || validator.IsEmpty(*r.TargetTeamManagerID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_team_manager_id",
			Message: "target_team_manager_id is required for SPECIFIC_TEAM scope",
		})
	}

	if r.Priority != nil && !Priority(*r.Priority).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of LOW, NORMAL, HIGH, URGENT",
		})
	}

	if r.ExpiresAt != nil {
		if _, ok := validator.IsValidDateTime(*r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an ISO8601 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAnnouncementRequest struct {
	ID        string  `json:"-"`
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

func (r *UpdateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}

	if r.Priority != nil && !Priority(*r.Priority).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of LOW, NORMAL, HIGH, URGENT",
		})
	}

	if r.ExpiresAt != nil {
		if _, ok := validator.IsValidDateTime(*r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an ISO8601 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AnnouncementFilter holds the allow-listed query filters for listing
type AnnouncementFilter struct {
	ActiveOnly bool
	Priority   *string
	Page       int
	Limit      int
}
