package notification

import "context"

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	GetByRecipient(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) ([]*Notification, int64, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, id string, recipientID string) (*Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
	MarkEmailSent(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, recipientID string) error
}
