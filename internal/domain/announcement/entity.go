package announcement

import "time"

type TargetScope string

const (
	ScopeAllEmployees TargetScope = "ALL_EMPLOYEES"
	ScopeSpecificTeam TargetScope = "SPECIFIC_TEAM"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// IsValid reports whether the priority is known.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Announcement struct {
	ID                  string
	Title               string
	Content             string
	AuthorID            string
	TargetScope         TargetScope
	TargetTeamManagerID *string
	Priority            Priority
	IsActive            bool
	PublishedAt         time.Time
	ExpiresAt           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO / Join
	AuthorEmail *string
}

// IsExpired reports whether the announcement has passed its expiry.
func (a *Announcement) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && a.ExpiresAt.Before(now)
}
