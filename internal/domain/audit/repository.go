package audit

import "context"

type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	CreateBatch(ctx context.Context, logs []*AuditLog) error
	List(ctx context.Context, filter Filter) ([]AuditLog, int64, error)
}
