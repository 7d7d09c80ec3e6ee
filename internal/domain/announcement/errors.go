package announcement

import "errors"

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrNotAuthor            = errors.New("only the author or admin RH can modify this announcement")
	ErrTargetTeamRequired   = errors.New("target_team_manager_id is required for SPECIFIC_TEAM scope")
)
