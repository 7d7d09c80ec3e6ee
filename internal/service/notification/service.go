package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/pkg/email"
	"github.com/hrsuite/hr-backend-go/internal/pkg/sse"
)

// Config holds notification service tuning knobs
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

// queued pairs a request with its pre-generated ID so the email
// dispatch can reference the persisted row.
type queued struct {
	req notification.CreateNotificationRequest
	id  string
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	mailer email.Mailer
	config Config

	queue  chan queued
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub, mailer email.Mailer, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		mailer: mailer,
		config: cfg,
		queue:  make(chan queued, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

// worker drains the queue in batches, flushing on size or interval
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]queued, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, item := range batch {
			notifications[i] = toEntity(item)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("Failed to batch insert notifications", "worker", id, "count", len(batch), "error", err)
		} else {
			for i, n := range notifications {
				s.hub.Publish(n.RecipientID, sse.Event{
					UserID: n.RecipientID,
					Event:  "notification",
					Data:   n.ToResponse(),
				})
				s.dispatchEmail(ctx, n, batch[i].req.RecipientEmail)
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case item := <-s.queue:
			batch = append(batch, item)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever is still buffered before the final flush
			for {
				select {
				case item := <-s.queue:
					batch = append(batch, item)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// dispatchEmail sends the email counterpart for email-worthy types and
// records the dispatch. Failures are logged only.
func (s *service) dispatchEmail(ctx context.Context, n *notification.Notification, recipientEmail string) {
	if !n.Type.IsEmailWorthy() || recipientEmail == "" {
		return
	}

	if err := s.mailer.Send(recipientEmail, n.Title, n.Message); err != nil {
		slog.Error("Failed to send notification email",
			"notification_id", n.ID,
			"type", string(n.Type),
			"error", err,
		)
		return
	}

	if err := s.repo.MarkEmailSent(ctx, n.ID); err != nil {
		slog.Error("Failed to mark notification email as sent", "notification_id", n.ID, "error", err)
	}
}

func toEntity(item queued) *notification.Notification {
	return &notification.Notification{
		ID:            item.id,
		RecipientID:   item.req.RecipientID,
		Type:          item.req.Type,
		Title:         item.req.Title,
		Message:       item.req.Message,
		ReferenceType: item.req.ReferenceType,
		ReferenceID:   item.req.ReferenceID,
		IsRead:        false,
		CreatedAt:     time.Now().UTC(),
	}
}

// QueueNotification implements notification.Service. Falls back to a
// direct insert when the queue is saturated.
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if !req.Type.IsValid() {
		return notification.ErrInvalidNotificationType
	}
	if req.ReferenceType != nil && !req.ReferenceType.IsValid() {
		return notification.ErrInvalidReferenceType
	}

	item := queued{req: req, id: uuid.New().String()}

	select {
	case s.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return s.directInsert(ctx, item)
	}
}

// QueueBulkNotification implements notification.Service.
func (s *service) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			slog.Error("Failed to queue notification", "recipient_id", req.RecipientID, "type", string(req.Type), "error", err)
		}
	}
	return nil
}

func (s *service) directInsert(ctx context.Context, item queued) error {
	n := toEntity(item)

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  "notification",
		Data:   n.ToResponse(),
	})
	s.dispatchEmail(ctx, n, item.req.RecipientEmail)

	return nil
}

// GetNotifications implements notification.Service.
func (s *service) GetNotifications(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := s.repo.GetByRecipient(ctx, recipientID, page, limit, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = n.ToResponse()
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
	}, nil
}

// GetNotification implements notification.Service. Non-owners get a
// not-found, never a hint that the notification exists.
func (s *service) GetNotification(ctx context.Context, recipientID string, id string) (notification.NotificationResponse, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notification.NotificationResponse{}, err
	}
	if n.RecipientID != recipientID {
		return notification.NotificationResponse{}, notification.ErrNotificationNotFound
	}
	return n.ToResponse(), nil
}

// MarkAsRead implements notification.Service.
func (s *service) MarkAsRead(ctx context.Context, recipientID string, id string) (notification.NotificationResponse, error) {
	n, err := s.repo.MarkAsRead(ctx, id, recipientID)
	if err != nil {
		return notification.NotificationResponse{}, err
	}
	return n.ToResponse(), nil
}

// MarkAllAsRead implements notification.Service. Idempotent: a second
// call reports zero modified rows.
func (s *service) MarkAllAsRead(ctx context.Context, recipientID string) (notification.MarkAllAsReadResponse, error) {
	modified, err := s.repo.MarkAllAsRead(ctx, recipientID)
	if err != nil {
		return notification.MarkAllAsReadResponse{}, err
	}
	return notification.MarkAllAsReadResponse{ModifiedCount: modified}, nil
}

// Delete implements notification.Service.
func (s *service) Delete(ctx context.Context, recipientID string, id string) error {
	return s.repo.Delete(ctx, id, recipientID)
}

// Subscribe implements notification.Service.
func (s *service) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(recipientID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					out <- notification.SSEEvent{
						Event: event.Event,
						Data:  resp,
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop drains the queue and stops the workers.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	slog.Info("Notification service stopped")
}
