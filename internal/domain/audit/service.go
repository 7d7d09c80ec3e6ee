package audit

import "context"

// Service defines the audit trail interface. Log is best-effort: it
// never blocks or fails the calling operation.
type Service interface {
	// Log queues an audit entry for asynchronous persistence
	Log(ctx context.Context, entry Entry)

	// List retrieves audit entries (admin RH only)
	List(ctx context.Context, filter Filter) ([]AuditLogResponse, int64, error)

	// Lifecycle
	Stop()
}
