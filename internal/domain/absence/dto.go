package absence

import (
	"mime/multipart"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
)

type AbsenceResponse struct {
	ID                       string     `json:"id"`
	EmployeeID               string     `json:"employee_id"`
	EmployeeName             *string    `json:"employee_name,omitempty"`
	AbsenceDate              string     `json:"absence_date"`
	Type                     string     `json:"absence_type"`
	Reason                   *string    `json:"reason,omitempty"`
	DeclaredBy               string     `json:"declared_by"`
	JustificationStatus      string     `json:"justification_status"`
	JustificationFileURL     *string    `json:"justification_file_url,omitempty"`
	JustificationSubmittedAt *time.Time `json:"justification_submitted_at,omitempty"`
	ProcessedBy              *string    `json:"processed_by,omitempty"`
	ProcessedAt              *time.Time `json:"processed_at,omitempty"`
	RejectionReason          *string    `json:"rejection_reason,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// ToResponse converts an Absence entity to its API representation
func (a *Absence) ToResponse() AbsenceResponse {
	return AbsenceResponse{
		ID:                       a.ID,
		EmployeeID:               a.EmployeeID,
		EmployeeName:             a.EmployeeName,
		AbsenceDate:              a.AbsenceDate.Format("2006-01-02"),
		Type:                     string(a.Type),
		Reason:                   a.Reason,
		DeclaredBy:               a.DeclaredBy,
		JustificationStatus:      string(a.JustificationStatus),
		JustificationFileURL:     a.JustificationFileURL,
		JustificationSubmittedAt: a.JustificationSubmittedAt,
		ProcessedBy:              a.ProcessedBy,
		ProcessedAt:              a.ProcessedAt,
		RejectionReason:          a.RejectionReason,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}

type DeclareAbsenceRequest struct {
	EmployeeID  string  `json:"employee_id"`
	AbsenceDate string  `json:"absence_date"`
	Type        string  `json:"absence_type"`
	Reason      *string `json:"reason,omitempty"`
}

func (r *DeclareAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.AbsenceDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_date",
			Message: "absence_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.AbsenceDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_date",
			Message: "absence_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_type",
			Message: "absence_type is required",
		})
	} else if !Type(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_type",
			Message: "absence_type must be one of MALADIE, PERSONNEL, NON_JUSTIFIE, AUTRE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubmitJustificationRequest carries the optional uploaded document
// alongside the free-text explanation.
type SubmitJustificationRequest struct {
	AbsenceID  string                `json:"-"`
	Comment    *string               `json:"comment,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *SubmitJustificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AbsenceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_id",
			Message: "absence_id is required",
		})
	}

	if r.Comment == nil && r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "justification",
			Message: "a comment or a justification file is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessJustificationRequest struct {
	AbsenceID       string  `json:"-"`
	Decision        string  `json:"decision"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *ProcessJustificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != string(JustificationValide) && r.Decision != string(JustificationRefuse) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be VALIDE or REFUSE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AbsenceFilter holds the allow-listed query filters for absence listing.
// Absences use dateStart/dateEnd parameter names.
type AbsenceFilter struct {
	EmployeeID *string
	Status     *string
	DateStart  *string
	DateEnd    *string
	Page       int
	Limit      int

	// Populated from claims, never from the query string
	ManagerEmployeeID *string
}

func (f *AbsenceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" {
		valid := []string{
			string(JustificationNonFourni),
			string(JustificationEnAttente),
			string(JustificationValide),
			string(JustificationRefuse),
		}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of NON_FOURNI, EN_ATTENTE, VALIDE, REFUSE",
			})
		}
	}

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
