package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// CheckOverlapping reports whether an EN_ATTENTE or APPROUVE request
	// of the employee touches the inclusive [start, end] range.
	CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// UpdateStatus records the decision; fails unless the request is
	// still EN_ATTENTE.
	UpdateStatus(ctx context.Context, id string, status Status, processedBy string, rejectionReason *string, processedAt time.Time) (LeaveRequest, error)

	// List retrieves leave requests with filters and pagination
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
}
