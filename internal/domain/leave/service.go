package leave

import "context"

type LeaveService interface {
	// CreateLeaveRequest submits a request for the authenticated employee,
	// rejecting overlapping pending or approved requests
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// ProcessLeaveRequest approves or refuses a pending request; the caller
	// must be the employee's direct manager or admin RH
	ProcessLeaveRequest(ctx context.Context, req ProcessLeaveRequestRequest) (LeaveRequestResponse, error)

	// GetLeaveRequest retrieves a single request with ownership checks
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)

	// ListLeaveRequests retrieves requests with role-scoped visibility
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, int64, error)

	// ListMyLeaveRequests retrieves the authenticated employee's own requests
	ListMyLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, int64, error)
}
