package employee

import (
	"time"

	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// EmployeeResponse represents employee data in API responses
type EmployeeResponse struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"user_id"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	Email                 *string         `json:"email,omitempty"`
	Matricule             string          `json:"matricule"`
	CIN                   string          `json:"cin"`
	PhoneNumber           *string         `json:"phone_number,omitempty"`
	Address               *string         `json:"address,omitempty"`
	DateOfBirth           *time.Time      `json:"date_of_birth,omitempty"`
	HireDate              time.Time       `json:"hire_date"`
	Status                string          `json:"status"`
	PositionID            *string         `json:"position_id,omitempty"`
	PositionTitle         *string         `json:"position_title,omitempty"`
	ManagerID             *string         `json:"manager_id,omitempty"`
	ManagerName           *string         `json:"manager_name,omitempty"`
	AnnualLeaveBalance    decimal.Decimal `json:"annual_leave_balance"`
	EmergencyContactName  *string         `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string         `json:"emergency_contact_phone,omitempty"`
	PhotoURL              *string         `json:"photo_url,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ToResponse converts an Employee entity to its API representation
func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:                    e.ID,
		UserID:                e.UserID,
		FirstName:             e.FirstName,
		LastName:              e.LastName,
		Email:                 e.Email,
		Matricule:             e.Matricule,
		CIN:                   e.CIN,
		PhoneNumber:           e.PhoneNumber,
		Address:               e.Address,
		DateOfBirth:           e.DateOfBirth,
		HireDate:              e.HireDate,
		Status:                string(e.Status),
		PositionID:            e.PositionID,
		PositionTitle:         e.PositionTitle,
		ManagerID:             e.ManagerID,
		ManagerName:           e.ManagerName,
		AnnualLeaveBalance:    e.AnnualLeaveBalance,
		EmergencyContactName:  e.EmergencyContactName,
		EmergencyContactPhone: e.EmergencyContactPhone,
		PhotoURL:              e.PhotoURL,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

// CreateEmployeeRequest creates the employee record together with its
// user account.
type CreateEmployeeRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Matricule   string  `json:"matricule"`
	CIN         string  `json:"cin"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	HireDate    string  `json:"hire_date"`
	PositionID  *string `json:"position_id,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if r.Role != "" && r.Role != "EMPLOYEE" && r.Role != "MANAGER" && r.Role != "ADMIN_RH" {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of ADMIN_RH, MANAGER, EMPLOYEE",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	if validator.IsEmpty(r.Matricule) {
		errs = append(errs, validator.ValidationError{
			Field:   "matricule",
			Message: "matricule is required",
		})
	}

	if validator.IsEmpty(r.CIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "cin",
			Message: "cin is required",
		})
	}

	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}

	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_birth",
				Message: "date_of_birth must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest applies a partial update. Matricule, CIN and
// user_id are immutable.
type UpdateEmployeeRequest struct {
	ID                    string           `json:"-"`
	FirstName             *string          `json:"first_name,omitempty"`
	LastName              *string          `json:"last_name,omitempty"`
	PhoneNumber           *string          `json:"phone_number,omitempty"`
	Address               *string          `json:"address,omitempty"`
	Status                *string          `json:"status,omitempty"`
	PositionID            *string          `json:"position_id,omitempty"`
	ManagerID             *string          `json:"manager_id,omitempty"`
	AnnualLeaveBalance    *decimal.Decimal `json:"annual_leave_balance,omitempty"`
	EmergencyContactName  *string          `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string          `json:"emergency_contact_phone,omitempty"`
	PhotoURL              *string          `json:"photo_url,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of ACTIF, SUSPENDU, QUITTE",
		})
	}

	if r.AnnualLeaveBalance != nil && r.AnnualLeaveBalance.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_leave_balance",
			Message: "annual_leave_balance must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EmployeeFilter holds the allow-listed query filters for employee listing
type EmployeeFilter struct {
	Status     *string
	PositionID *string
	ManagerID  *string
	Search     *string
	Page       int
	Limit      int
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of ACTIF, SUSPENDU, QUITTE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
