package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	mu         sync.Mutex
	inserted   []*notification.Notification
	emailsSent []string

	getByIDFn       func(ctx context.Context, id string) (*notification.Notification, error)
	markAllAsReadFn func(ctx context.Context, recipientID string) (int64, error)
}

func (s *stubRepo) Create(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, n)
	return nil
}

func (s *stubRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, notifications...)
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubRepo) GetByRecipient(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) ([]*notification.Notification, int64, error) {
	return nil, 0, nil
}

func (s *stubRepo) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return 0, nil
}

func (s *stubRepo) MarkAsRead(ctx context.Context, id string, recipientID string) (*notification.Notification, error) {
	return &notification.Notification{ID: id, RecipientID: recipientID, IsRead: true}, nil
}

func (s *stubRepo) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	return s.markAllAsReadFn(ctx, recipientID)
}

func (s *stubRepo) MarkEmailSent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emailsSent = append(s.emailsSent, id)
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id string, recipientID string) error {
	return nil
}

func (s *stubRepo) insertedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inserted)
}

func (s *stubRepo) emailSentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emailsSent)
}

type stubMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *stubMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestQueueNotification_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	svc := NewNotificationService(&stubRepo{}, sse.NewHub(), &stubMailer{}, Config{})
	defer svc.Stop()

	err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Type:        "BOGUS",
		Title:       "x",
	})

	assert.ErrorIs(t, err, notification.ErrInvalidNotificationType)
}

func TestQueueNotification_FlushPersistsAndEmails(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	mailer := &stubMailer{}
	svc := NewNotificationService(repo, sse.NewHub(), mailer, Config{
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
		QueueSize:     10,
	})
	defer svc.Stop()

	err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
		RecipientID:    "user-1",
		Type:           notification.TypeLeaveApproved,
		Title:          "Demande de congé approuvée",
		Message:        "Votre demande a été approuvée.",
		RecipientEmail: "user-1@example.com",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return repo.insertedCount() == 1 && mailer.sentCount() == 1 && repo.emailSentCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQueueNotification_SystemTypeSkipsEmail(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	mailer := &stubMailer{}
	svc := NewNotificationService(repo, sse.NewHub(), mailer, Config{
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
		QueueSize:     10,
	})
	defer svc.Stop()

	err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
		RecipientID:    "user-1",
		Type:           notification.TypeSystem,
		Title:          "Absence déclarée",
		Message:        "Une absence a été déclarée pour vous.",
		RecipientEmail: "user-1@example.com",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return repo.insertedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Zero(t, mailer.sentCount())
}

func TestQueueNotification_PublishesToSubscriber(t *testing.T) {
	t.Parallel()

	hub := sse.NewHub()
	svc := NewNotificationService(&stubRepo{}, hub, &stubMailer{}, Config{
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
		QueueSize:     10,
	})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup := svc.Subscribe(ctx, "user-1")
	defer cleanup()

	err := svc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Type:        notification.TypeAnnouncement,
		Title:       "Nouvelle annonce",
		Message:     "Réunion générale lundi",
	})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "Nouvelle annonce", event.Data.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("no SSE event received")
	}
}

func TestStop_PersistsQueuedNotifications(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	// Flush interval far beyond the test: only Stop can persist
	svc := NewNotificationService(repo, sse.NewHub(), &stubMailer{}, Config{
		BatchSize:     50,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     100,
	})

	for i := 0; i < 25; i++ {
		err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
			RecipientID: "user-1",
			Type:        notification.TypeSystem,
			Title:       "Maintenance planifiée",
			Message:     "Le service sera indisponible ce soir.",
		})
		require.NoError(t, err)
	}

	svc.Stop()

	assert.Equal(t, 25, repo.insertedCount())
}

func TestGetNotification_HidesOtherRecipients(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		getByIDFn: func(ctx context.Context, id string) (*notification.Notification, error) {
			return &notification.Notification{ID: id, RecipientID: "user-1"}, nil
		},
	}
	svc := NewNotificationService(repo, sse.NewHub(), &stubMailer{}, Config{})
	defer svc.Stop()

	_, err := svc.GetNotification(context.Background(), "user-2", "notif-1")

	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestMarkAllAsRead_SecondCallReportsZero(t *testing.T) {
	t.Parallel()

	calls := 0
	repo := &stubRepo{
		markAllAsReadFn: func(ctx context.Context, recipientID string) (int64, error) {
			calls++
			if calls == 1 {
				return 3, nil
			}
			return 0, nil
		},
	}
	svc := NewNotificationService(repo, sse.NewHub(), &stubMailer{}, Config{})
	defer svc.Stop()

	first, err := svc.MarkAllAsRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.ModifiedCount)

	second, err := svc.MarkAllAsRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, second.ModifiedCount)
}
