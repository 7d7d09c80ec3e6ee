package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
)

const defaultListLimit = 50

// Config holds audit service tuning knobs
type Config struct {
	BatchSize     int           // default: 50
	FlushInterval time.Duration // default: 3 seconds
	QueueSize     int           // default: 500
}

type service struct {
	repo   audit.Repository
	config Config

	queue  chan *audit.AuditLog
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewAuditService creates an audit service with a background writer
func NewAuditService(repo audit.Repository, cfg Config) audit.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 3 * time.Second
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 500
	}

	s := &service{
		repo:   repo,
		config: cfg,
		queue:  make(chan *audit.AuditLog, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.writer()

	slog.Info("Audit service started", "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

func (s *service) writer() {
	defer s.wg.Done()

	batch := make([]*audit.AuditLog, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			slog.Error("Failed to batch insert audit logs", "count", len(batch), "error", err)
		}

		batch = batch[:0]
	}

	for {
		select {
		case entry := <-s.queue:
			batch = append(batch, entry)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever is still buffered before the final flush
			for {
				select {
				case entry := <-s.queue:
					batch = append(batch, entry)
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

// Log implements audit.Service. Best-effort: a saturated queue falls
// back to a synchronous insert whose failure is only logged.
func (s *service) Log(ctx context.Context, entry audit.Entry) {
	record := &audit.AuditLog{
		ID:         uuid.New().String(),
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		OldValues:  entry.OldValues,
		NewValues:  entry.NewValues,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		CreatedAt:  time.Now().UTC(),
	}

	select {
	case s.queue <- record:
	default:
		if err := s.repo.Create(ctx, record); err != nil {
			slog.Error("Failed to write audit log",
				"action", entry.Action,
				"entity_type", entry.EntityType,
				"error", err,
			)
		}
	}
}

// List implements audit.Service.
func (s *service) List(ctx context.Context, filter audit.Filter) ([]audit.AuditLogResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = defaultListLimit
	}

	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]audit.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, logs[i].ToResponse())
	}

	return responses, total, nil
}

// Stop drains the queue and stops the writer.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	slog.Info("Audit service stopped")
}
