package announcement

import "context"

// Service defines business logic for announcements
type Service interface {
	// Create publishes an announcement and fans out notifications to
	// the targeted recipients
	Create(ctx context.Context, req CreateAnnouncementRequest) (AnnouncementResponse, error)

	Get(ctx context.Context, id string) (AnnouncementResponse, error)

	List(ctx context.Context, filter AnnouncementFilter) ([]AnnouncementResponse, int64, error)

	// Update applies an allow-listed partial update (author or admin RH)
	Update(ctx context.Context, req UpdateAnnouncementRequest) (AnnouncementResponse, error)

	// Delete removes an announcement (author or admin RH)
	Delete(ctx context.Context, id string) error
}
