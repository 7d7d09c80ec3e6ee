package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeAnnuel    Type = "ANNUEL"
	TypeMaladie   Type = "MALADIE"
	TypeMaternite Type = "MATERNITE"
	TypePaternite Type = "PATERNITE"
	TypeSansSolde Type = "SANS_SOLDE"
	TypeAutre     Type = "AUTRE"
)

// IsValid reports whether the leave type is known.
func (t Type) IsValid() bool {
	switch t {
	case TypeAnnuel, TypeMaladie, TypeMaternite, TypePaternite, TypeSansSolde, TypeAutre:
		return true
	}
	return false
}

type Status string

const (
	StatusEnAttente Status = "EN_ATTENTE"
	StatusApprouve  Status = "APPROUVE"
	StatusRefuse    Status = "REFUSE"
)

type LeaveRequest struct {
	ID              string
	EmployeeID      string
	StartDate       time.Time
	EndDate         time.Time
	Type            Type
	Reason          *string
	DaysRequested   decimal.Decimal
	Status          Status
	ProcessedBy     *string
	ProcessedAt     *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeName *string
}

// Overlaps reports whether the request's inclusive date range touches
// the [start, end] range.
func (lr *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !lr.StartDate.After(end) && !lr.EndDate.Before(start)
}
