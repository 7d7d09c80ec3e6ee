package absence

import "errors"

var (
	ErrAbsenceNotFound     = errors.New("absence not found")
	ErrAbsenceExists       = errors.New("absence already declared for this employee and date")
	ErrNotAbsenceOwner     = errors.New("only the absent employee can submit a justification")
	ErrAlreadyJustified    = errors.New("a justification has already been submitted")
	ErrNotAwaitingDecision = errors.New("justification is not awaiting a decision")
	ErrUnauthorized        = errors.New("unauthorized to access this absence")
	ErrInvalidDecision     = errors.New("decision must be VALIDE or REFUSE")
	ErrNoEmployeeProfile   = errors.New("no employee profile linked to this account")
)
