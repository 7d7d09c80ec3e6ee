package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/attendance"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.attendance_date, a.check_in_time, a.check_out_time,
	   a.total_hours, a.status, a.notes, a.created_at, a.updated_at,
	   e.first_name || ' ' || e.last_name, p.title`

const attendanceJoins = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
	LEFT JOIN positions p ON p.id = e.position_id`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID,
		&att.EmployeeID,
		&att.Date,
		&att.CheckInTime,
		&att.CheckOutTime,
		&att.TotalHours,
		&att.Status,
		&att.Notes,
		&att.CreatedAt,
		&att.UpdatedAt,
		&att.EmployeeName,
		&att.EmployeePosition,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, attendance_date, check_in_time, check_out_time, total_hours, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	created := newAttendance
	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckInTime,
		newAttendance.CheckOutTime,
		newAttendance.TotalHours,
		newAttendance.Status,
		newAttendance.Notes,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceJoins + ` WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceJoins + `
		WHERE a.employee_id = $1 AND a.attendance_date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in_time = $1, check_out_time = $2, total_hours = $3, status = $4, notes = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	updated := att
	err := q.QueryRow(ctx, query,
		att.CheckInTime,
		att.CheckOutTime,
		att.TotalHours,
		att.Status,
		att.Notes,
		att.ID,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return updated, nil
}

func attendanceConditions(employeeID, startDate, endDate, status, managerEmployeeID *string, argIdx *int) ([]string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, *argIdx))
		args = append(args, value)
		*argIdx = *argIdx + 1
	}

	if employeeID != nil {
		add("a.employee_id = $%d", *employeeID)
	}
	if startDate != nil && *startDate != "" {
		add("a.attendance_date >= $%d", *startDate)
	}
	if endDate != nil && *endDate != "" {
		add("a.attendance_date <= $%d", *endDate)
	}
	if status != nil && *status != "" {
		add("a.status = $%d", *status)
	}
	if managerEmployeeID != nil {
		add("e.manager_id = $%d", *managerEmployeeID)
	}

	return conditions, args
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	argIdx := 1
	conditions, args := attendanceConditions(
		filter.EmployeeID, filter.StartDate, filter.EndDate, filter.Status, filter.ManagerEmployeeID, &argIdx,
	)
	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + attendanceJoins + ` WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY a.attendance_date DESC, e.last_name ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, attendanceJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	argIdx := 1
	conditions, args := attendanceConditions(
		&employeeID, filter.StartDate, filter.EndDate, filter.Status, nil, &argIdx,
	)
	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + attendanceJoins + ` WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY a.attendance_date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, attendanceJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get attendance history: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time, managerEmployeeID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceJoins + ` WHERE a.attendance_date = $1`
	args := []interface{}{date}

	if managerEmployeeID != nil {
		query += ` AND e.manager_id = $2`
		args = append(args, *managerEmployeeID)
	}
	query += ` ORDER BY e.last_name ASC, e.first_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, rows.Err()
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) (int64, error) {
	if len(absences) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, a.db)

	valueStrings := make([]string, 0, len(absences))
	args := make([]interface{}, 0, len(absences)*4)

	for i, absence := range absences {
		base := i * 4
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, absence.EmployeeID, absence.Date, absence.Status, absence.TotalHours)
	}

	query := fmt.Sprintf(`
		INSERT INTO attendances (employee_id, attendance_date, status, total_hours)
		VALUES %s
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
	`, strings.Join(valueStrings, ", "))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create absences: %w", err)
	}

	return tag.RowsAffected(), nil
}
