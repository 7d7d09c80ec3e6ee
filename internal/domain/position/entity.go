package position

import "time"

type Position struct {
	ID             string
	Title          string
	Department     string
	HierarchyLevel int
	Description    *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
