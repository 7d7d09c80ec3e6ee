package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/leave"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.leave_type,
	   lr.reason, lr.days_requested, lr.status,
	   lr.processed_by, lr.processed_at, lr.rejection_reason,
	   lr.created_at, lr.updated_at,
	   e.first_name || ' ' || e.last_name`

const leaveRequestJoins = `
	FROM leave_requests lr
	JOIN employees e ON e.id = lr.employee_id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var found leave.LeaveRequest
	err := row.Scan(
		&found.ID,
		&found.EmployeeID,
		&found.StartDate,
		&found.EndDate,
		&found.Type,
		&found.Reason,
		&found.DaysRequested,
		&found.Status,
		&found.ProcessedBy,
		&found.ProcessedAt,
		&found.RejectionReason,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeName,
	)
	return found, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, start_date, end_date, leave_type, reason, days_requested, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	created := request
	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.StartDate,
		request.EndDate,
		request.Type,
		request.Reason,
		request.DaysRequested,
		request.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + ` WHERE lr.id = $1`

	found, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by id: %w", err)
	}

	return found, nil
}

// CheckOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Inclusive range overlap against pending and approved requests
	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $4
			  AND end_date >= $5
		)
	`

	var overlaps bool
	err := q.QueryRow(ctx, query,
		employeeID, leave.StatusEnAttente, leave.StatusApprouve, end, start,
	).Scan(&overlaps)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return overlaps, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, processedBy string, rejectionReason *string, processedAt time.Time) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, processed_by = $2, processed_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		status, processedBy, processedAt, rejectionReason,
		id, leave.StatusEnAttente,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish missing row from already processed
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.LeaveRequest{}, getErr
			}
			return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("lr.end_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("lr.start_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.ManagerEmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("e.manager_id = $%d", argIdx))
		args = append(args, *filter.ManagerEmployeeID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + leaveRequestJoins + ` WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, leaveRequestJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		found, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, found)
	}

	return requests, total, rows.Err()
}
