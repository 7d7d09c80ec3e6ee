package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	mu       sync.Mutex
	inserted []*audit.AuditLog
	direct   int
}

func (s *stubRepo) Create(ctx context.Context, log *audit.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, log)
	s.direct++
	return nil
}

func (s *stubRepo) CreateBatch(ctx context.Context, logs []*audit.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, logs...)
	return nil
}

func (s *stubRepo) List(ctx context.Context, filter audit.Filter) ([]audit.AuditLog, int64, error) {
	return nil, 0, nil
}

func (s *stubRepo) insertedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inserted)
}

func TestLog_BatchInsertsOnFlush(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := NewAuditService(repo, Config{
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
		QueueSize:     20,
	})
	defer svc.Stop()

	svc.Log(context.Background(), audit.Entry{
		UserID:     "user-1",
		Action:     audit.ActionCreate,
		EntityType: "employee",
	})

	require.Eventually(t, func() bool {
		return repo.insertedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStop_PersistsQueuedEntries(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	// Flush interval far beyond the test: only Stop can persist
	svc := NewAuditService(repo, Config{
		BatchSize:     50,
		FlushInterval: time.Hour,
		QueueSize:     200,
	})

	for i := 0; i < 120; i++ {
		svc.Log(context.Background(), audit.Entry{
			UserID:     "user-1",
			Action:     audit.ActionUpdate,
			EntityType: "leave_request",
		})
	}

	svc.Stop()

	assert.Equal(t, 120, repo.insertedCount())
}

func TestList_CapsLimit(t *testing.T) {
	t.Parallel()

	var seen audit.Filter
	repo := &listSpyRepo{listFn: func(ctx context.Context, filter audit.Filter) ([]audit.AuditLog, int64, error) {
		seen = filter
		return nil, 0, nil
	}}
	svc := NewAuditService(repo, Config{})
	defer svc.Stop()

	_, _, err := svc.List(context.Background(), audit.Filter{Page: 0, Limit: 5000})
	require.NoError(t, err)

	assert.Equal(t, 1, seen.Page)
	assert.Equal(t, defaultListLimit, seen.Limit)
}

type listSpyRepo struct {
	stubRepo
	listFn func(ctx context.Context, filter audit.Filter) ([]audit.AuditLog, int64, error)
}

func (s *listSpyRepo) List(ctx context.Context, filter audit.Filter) ([]audit.AuditLog, int64, error) {
	return s.listFn(ctx, filter)
}
