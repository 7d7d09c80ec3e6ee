package absence

import (
	"context"
	"time"
)

type AbsenceRepository interface {
	// Create inserts a declared absence. The (employee_id, absence_date)
	// unique index maps violations to ErrAbsenceExists.
	Create(ctx context.Context, newAbsence Absence) (Absence, error)

	GetByID(ctx context.Context, id string) (Absence, error)

	ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// SubmitJustification moves NON_FOURNI to EN_ATTENTE
	SubmitJustification(ctx context.Context, id string, fileURL *string, comment *string, submittedAt time.Time) (Absence, error)

	// ProcessJustification moves EN_ATTENTE to VALIDE or REFUSE
	ProcessJustification(ctx context.Context, id string, status JustificationStatus, processedBy string, rejectionReason *string, processedAt time.Time) (Absence, error)

	// List retrieves absences with filters and pagination
	List(ctx context.Context, filter AbsenceFilter) ([]Absence, int64, error)
}
