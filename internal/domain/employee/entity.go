package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                     string
	UserID                 string
	FirstName              string
	LastName               string
	Matricule              string
	CIN                    string
	PhoneNumber            *string
	Address                *string
	DateOfBirth            *time.Time
	HireDate               time.Time
	Status                 Status
	PositionID             *string
	ManagerID              *string
	AnnualLeaveBalance     decimal.Decimal
	EmergencyContactName   *string
	EmergencyContactPhone  *string
	PhotoURL               *string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// DTO / Join
	Email         *string
	PositionTitle *string
	ManagerName   *string
}

// FullName returns the display name of the employee
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Status string

const (
	StatusActif    Status = "ACTIF"
	StatusSuspendu Status = "SUSPENDU"
	StatusQuitte   Status = "QUITTE"
)

// IsValid reports whether the status is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusActif, StatusSuspendu, StatusQuitte:
		return true
	}
	return false
}

// DefaultAnnualLeaveBalance is granted to every new employee.
var DefaultAnnualLeaveBalance = decimal.NewFromInt(30)
