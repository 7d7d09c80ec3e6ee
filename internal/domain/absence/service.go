package absence

import "context"

// Service defines business logic for the absence justification workflow
type Service interface {
	// Declare records an unplanned absence for an employee (manager+ only)
	Declare(ctx context.Context, req DeclareAbsenceRequest) (AbsenceResponse, error)

	// SubmitJustification lets the absent employee explain themselves
	SubmitJustification(ctx context.Context, req SubmitJustificationRequest) (AbsenceResponse, error)

	// ProcessJustification accepts or refuses a pending justification (manager+ only)
	ProcessJustification(ctx context.Context, req ProcessJustificationRequest) (AbsenceResponse, error)

	// Get retrieves a single absence with ownership checks
	Get(ctx context.Context, id string) (AbsenceResponse, error)

	// List retrieves absences with role-scoped visibility
	List(ctx context.Context, filter AbsenceFilter) ([]AbsenceResponse, int64, error)
}
