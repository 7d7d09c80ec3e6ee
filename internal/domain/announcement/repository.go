package announcement

import "context"

type AnnouncementRepository interface {
	Create(ctx context.Context, newAnnouncement Announcement) (Announcement, error)
	GetByID(ctx context.Context, id string) (Announcement, error)
	Update(ctx context.Context, req UpdateAnnouncementRequest) (Announcement, error)
	List(ctx context.Context, filter AnnouncementFilter) ([]Announcement, int64, error)
	Delete(ctx context.Context, id string) error
}
