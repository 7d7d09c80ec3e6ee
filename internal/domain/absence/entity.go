package absence

import "time"

type Type string

const (
	TypeMaladie     Type = "MALADIE"
	TypePersonnel   Type = "PERSONNEL"
	TypeNonJustifie Type = "NON_JUSTIFIE"
	TypeAutre       Type = "AUTRE"
)

// IsValid reports whether the absence type is known.
func (t Type) IsValid() bool {
	switch t {
	case TypeMaladie, TypePersonnel, TypeNonJustifie, TypeAutre:
		return true
	}
	return false
}

type JustificationStatus string

const (
	JustificationNonFourni JustificationStatus = "NON_FOURNI"
	JustificationEnAttente JustificationStatus = "EN_ATTENTE"
	JustificationValide    JustificationStatus = "VALIDE"
	JustificationRefuse    JustificationStatus = "REFUSE"
)

// DefaultRejectionReason is stored when a justification is refused
// without an explicit reason.
const DefaultRejectionReason = "Aucune raison spécifiée"

type Absence struct {
	ID                       string
	EmployeeID               string
	AbsenceDate              time.Time
	Type                     Type
	Reason                   *string
	DeclaredBy               string
	JustificationStatus      JustificationStatus
	JustificationFileURL     *string
	JustificationSubmittedAt *time.Time
	ProcessedBy              *string
	ProcessedAt              *time.Time
	RejectionReason          *string
	CreatedAt                time.Time
	UpdatedAt                time.Time

	// DTO / Join
	EmployeeName *string
}
