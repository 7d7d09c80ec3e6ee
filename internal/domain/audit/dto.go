package audit

import (
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
)

// Entry is what callers hand to the audit logger.
type Entry struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   *string
	OldValues  map[string]interface{}
	NewValues  map[string]interface{}
	IPAddress  *string
	UserAgent  *string
}

type AuditLogResponse struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"user_id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *string                `json:"entity_id,omitempty"`
	OldValues  map[string]interface{} `json:"old_values,omitempty"`
	NewValues  map[string]interface{} `json:"new_values,omitempty"`
	IPAddress  *string                `json:"ip_address,omitempty"`
	UserAgent  *string                `json:"user_agent,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ToResponse converts an AuditLog entity to its API representation
func (a *AuditLog) ToResponse() AuditLogResponse {
	return AuditLogResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		OldValues:  a.OldValues,
		NewValues:  a.NewValues,
		IPAddress:  a.IPAddress,
		UserAgent:  a.UserAgent,
		CreatedAt:  a.CreatedAt,
	}
}

// Filter holds the allow-listed query filters for audit log listing
type Filter struct {
	UserID     *string
	EntityType *string
	EntityID   *string
	Action     *string
	DateStart  *string
	DateEnd    *string
	Page       int
	Limit      int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.DateStart != nil && *f.DateStart != "" {
		if _, ok := validator.IsValidDate(*f.DateStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateStart",
				Message: "dateStart must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateEnd != nil && *f.DateEnd != "" {
		if _, ok := validator.IsValidDate(*f.DateEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateEnd",
				Message: "dateEnd must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
