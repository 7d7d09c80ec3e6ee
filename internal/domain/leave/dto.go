package leave

import (
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type LeaveRequestResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	Type            string          `json:"leave_type"`
	Reason          *string         `json:"reason,omitempty"`
	DaysRequested   decimal.Decimal `json:"days_requested"`
	Status          string          `json:"status"`
	ProcessedBy     *string         `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToResponse converts a LeaveRequest entity to its API representation
func (lr *LeaveRequest) ToResponse() LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		EmployeeName:    lr.EmployeeName,
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		Type:            string(lr.Type),
		Reason:          lr.Reason,
		DaysRequested:   lr.DaysRequested,
		Status:          string(lr.Status),
		ProcessedBy:     lr.ProcessedBy,
		ProcessedAt:     lr.ProcessedAt,
		RejectionReason: lr.RejectionReason,
		CreatedAt:       lr.CreatedAt,
		UpdatedAt:       lr.UpdatedAt,
	}
}

var minimumDaysRequested = decimal.NewFromFloat(0.5)

type CreateLeaveRequestRequest struct {
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Type          string          `json:"leave_type"`
	Reason        *string         `json:"reason,omitempty"`
	DaysRequested decimal.Decimal `json:"days_requested"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) || !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) || !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be after end_date",
		})
	}

	if !Type(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of ANNUEL, MALADIE, MATERNITE, PATERNITE, SANS_SOLDE, AUTRE",
		})
	}

	if r.DaysRequested.LessThan(minimumDaysRequested) {
		errs = append(errs, validator.ValidationError{
			Field:   "days_requested",
			Message: "days_requested must be at least 0.5",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessLeaveRequestRequest struct {
	RequestID       string  `json:"-"`
	Decision        string  `json:"decision"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *ProcessLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != string(StatusApprouve) && r.Decision != string(StatusRefuse) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be APPROUVE or REFUSE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestFilter holds the allow-listed query filters for leave listing
type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int

	// Populated from claims, never from the query string
	ManagerEmployeeID *string
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" {
		valid := []string{string(StatusEnAttente), string(StatusApprouve), string(StatusRefuse)}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of EN_ATTENTE, APPROUVE, REFUSE",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
