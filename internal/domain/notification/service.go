package notification

import "context"

// Service defines the notification service interface. Queueing is
// best-effort: failures are logged by the workers, never surfaced to
// the calling operation.
type Service interface {
	// Queue notification (async processing via background workers)
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	// Direct operations
	GetNotifications(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) (*NotificationListResponse, error)
	GetNotification(ctx context.Context, recipientID string, id string) (NotificationResponse, error)
	MarkAsRead(ctx context.Context, recipientID string, id string) (NotificationResponse, error)
	MarkAllAsRead(ctx context.Context, recipientID string) (MarkAllAsReadResponse, error)
	Delete(ctx context.Context, recipientID string, id string) error

	// SSE subscription
	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
