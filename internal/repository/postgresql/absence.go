package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/absence"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepositoryImpl{db: db}
}

const absenceColumns = `a.id, a.employee_id, a.absence_date, a.absence_type, a.reason, a.declared_by,
	   a.justification_status, a.justification_file_url, a.justification_submitted_at,
	   a.processed_by, a.processed_at, a.rejection_reason,
	   a.created_at, a.updated_at,
	   e.first_name || ' ' || e.last_name`

const absenceJoins = `
	FROM absences a
	JOIN employees e ON e.id = a.employee_id`

func scanAbsence(row pgx.Row) (absence.Absence, error) {
	var found absence.Absence
	err := row.Scan(
		&found.ID,
		&found.EmployeeID,
		&found.AbsenceDate,
		&found.Type,
		&found.Reason,
		&found.DeclaredBy,
		&found.JustificationStatus,
		&found.JustificationFileURL,
		&found.JustificationSubmittedAt,
		&found.ProcessedBy,
		&found.ProcessedAt,
		&found.RejectionReason,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeName,
	)
	return found, err
}

// Create implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Create(ctx context.Context, newAbsence absence.Absence) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absences (employee_id, absence_date, absence_type, reason, declared_by, justification_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	created := newAbsence
	err := q.QueryRow(ctx, query,
		newAbsence.EmployeeID,
		newAbsence.AbsenceDate,
		newAbsence.Type,
		newAbsence.Reason,
		newAbsence.DeclaredBy,
		newAbsence.JustificationStatus,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return absence.Absence{}, absence.ErrAbsenceExists
		}
		return absence.Absence{}, fmt.Errorf("failed to create absence: %w", err)
	}

	return created, nil
}

// GetByID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceColumns + absenceJoins + ` WHERE a.id = $1`

	found, err := scanAbsence(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Absence{}, absence.ErrAbsenceNotFound
		}
		return absence.Absence{}, fmt.Errorf("failed to get absence by id: %w", err)
	}

	return found, nil
}

// ExistsByEmployeeAndDate implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM absences WHERE employee_id = $1 AND absence_date = $2)`,
		employeeID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check absence existence: %w", err)
	}
	return exists, nil
}

// SubmitJustification implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) SubmitJustification(ctx context.Context, id string, fileURL *string, comment *string, submittedAt time.Time) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absences
		SET justification_status = $1, justification_file_url = COALESCE($2, justification_file_url),
			reason = COALESCE($3, reason), justification_submitted_at = $4, updated_at = NOW()
		WHERE id = $5 AND justification_status = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		absence.JustificationEnAttente, fileURL, comment, submittedAt,
		id, absence.JustificationNonFourni,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish missing row from wrong state
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return absence.Absence{}, getErr
			}
			return absence.Absence{}, absence.ErrAlreadyJustified
		}
		return absence.Absence{}, fmt.Errorf("failed to submit justification: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// ProcessJustification implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ProcessJustification(ctx context.Context, id string, status absence.JustificationStatus, processedBy string, rejectionReason *string, processedAt time.Time) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absences
		SET justification_status = $1, processed_by = $2, processed_at = $3,
			rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND justification_status = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		status, processedBy, processedAt, rejectionReason,
		id, absence.JustificationEnAttente,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return absence.Absence{}, getErr
			}
			return absence.Absence{}, absence.ErrNotAwaitingDecision
		}
		return absence.Absence{}, fmt.Errorf("failed to process justification: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// List implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.Absence, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.justification_status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateStart != nil && *filter.DateStart != "" {
		conditions = append(conditions, fmt.Sprintf("a.absence_date >= $%d", argIdx))
		args = append(args, *filter.DateStart)
		argIdx++
	}
	if filter.DateEnd != nil && *filter.DateEnd != "" {
		conditions = append(conditions, fmt.Sprintf("a.absence_date <= $%d", argIdx))
		args = append(args, *filter.DateEnd)
		argIdx++
	}
	if filter.ManagerEmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("e.manager_id = $%d", argIdx))
		args = append(args, *filter.ManagerEmployeeID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + absenceJoins + ` WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count absences: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY a.absence_date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, absenceColumns, absenceJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	var absences []absence.Absence
	for rows.Next() {
		found, err := scanAbsence(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, found)
	}

	return absences, total, rows.Err()
}
