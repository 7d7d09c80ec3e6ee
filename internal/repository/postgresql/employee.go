package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `e.id, e.user_id, e.first_name, e.last_name, e.matricule, e.cin,
	   e.phone_number, e.address, e.date_of_birth, e.hire_date, e.status,
	   e.position_id, e.manager_id, e.annual_leave_balance,
	   e.emergency_contact_name, e.emergency_contact_phone, e.photo_url,
	   e.created_at, e.updated_at,
	   u.email, p.title, m.first_name || ' ' || m.last_name`

const employeeJoins = `
	FROM employees e
	JOIN users u ON u.id = e.user_id
	LEFT JOIN positions p ON p.id = e.position_id
	LEFT JOIN employees m ON m.id = e.manager_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var found employee.Employee
	err := row.Scan(
		&found.ID,
		&found.UserID,
		&found.FirstName,
		&found.LastName,
		&found.Matricule,
		&found.CIN,
		&found.PhoneNumber,
		&found.Address,
		&found.DateOfBirth,
		&found.HireDate,
		&found.Status,
		&found.PositionID,
		&found.ManagerID,
		&found.AnnualLeaveBalance,
		&found.EmergencyContactName,
		&found.EmergencyContactPhone,
		&found.PhotoURL,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.Email,
		&found.PositionTitle,
		&found.ManagerName,
	)
	return found, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + employeeJoins + ` WHERE e.id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return found, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + employeeJoins + ` WHERE e.user_id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}

	return found, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, first_name, last_name, matricule, cin,
			phone_number, address, date_of_birth, hire_date, status,
			position_id, manager_id, annual_leave_balance,
			emergency_contact_name, emergency_contact_phone, photo_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	created := newEmployee
	err := q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.Matricule,
		newEmployee.CIN,
		newEmployee.PhoneNumber,
		newEmployee.Address,
		newEmployee.DateOfBirth,
		newEmployee.HireDate,
		newEmployee.Status,
		newEmployee.PositionID,
		newEmployee.ManagerID,
		newEmployee.AnnualLeaveBalance,
		newEmployee.EmergencyContactName,
		newEmployee.EmergencyContactPhone,
		newEmployee.PhotoURL,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "cin") {
				return employee.Employee{}, employee.ErrCINExists
			}
			return employee.Employee{}, employee.ErrMatriculeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// ExistsByMatriculeOrCIN implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByMatriculeOrCIN(ctx context.Context, matricule, cin string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE matricule = $1 OR cin = $2)`,
		matricule, cin,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check matricule/cin existence: %w", err)
	}
	return exists, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.PhoneNumber != nil {
		addSet("phone_number", *req.PhoneNumber)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}
	if req.PositionID != nil {
		addSet("position_id", *req.PositionID)
	}
	if req.ManagerID != nil {
		addSet("manager_id", *req.ManagerID)
	}
	if req.AnnualLeaveBalance != nil {
		addSet("annual_leave_balance", *req.AnnualLeaveBalance)
	}
	if req.EmergencyContactName != nil {
		addSet("emergency_contact_name", *req.EmergencyContactName)
	}
	if req.EmergencyContactPhone != nil {
		addSet("emergency_contact_phone", *req.EmergencyContactPhone)
	}
	if req.PhotoURL != nil {
		addSet("photo_url", *req.PhotoURL)
	}

	query := fmt.Sprintf(
		`UPDATE employees SET %s WHERE id = $%d RETURNING id`,
		strings.Join(setClauses, ", "), argIdx,
	)
	args = append(args, req.ID)

	var id string
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return r.GetByID(ctx, id)
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.PositionID != nil {
		conditions = append(conditions, fmt.Sprintf("e.position_id = $%d", argIdx))
		args = append(args, *filter.PositionID)
		argIdx++
	}
	if filter.ManagerID != nil {
		conditions = append(conditions, fmt.Sprintf("e.manager_id = $%d", argIdx))
		args = append(args, *filter.ManagerID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.matricule ILIKE $%d)",
			argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM employees e WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY e.last_name ASC, e.first_name ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, employeeJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		found, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, found)
	}

	return employees, total, rows.Err()
}

// GetDirectReports implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + employeeJoins + `
		WHERE e.manager_id = $1
		ORDER BY e.last_name ASC, e.first_name ASC`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get direct reports: %w", err)
	}
	defer rows.Close()

	var reports []employee.Employee
	for rows.Next() {
		found, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		reports = append(reports, found)
	}

	return reports, rows.Err()
}

// GetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + employeeJoins + `
		WHERE e.status = 'ACTIF'
		ORDER BY e.last_name ASC, e.first_name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		found, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, found)
	}

	return employees, rows.Err()
}

// SetStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetStatus(ctx context.Context, id string, status employee.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set employee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// AdjustLeaveBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) AdjustLeaveBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET annual_leave_balance = annual_leave_balance + $1, updated_at = NOW()
		WHERE id = $2
	`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// IsManagerOf implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) IsManagerOf(ctx context.Context, managerEmployeeID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var isManager bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1 AND manager_id = $2)`,
		employeeID, managerEmployeeID,
	).Scan(&isManager)
	if err != nil {
		return false, fmt.Errorf("failed to check manager relationship: %w", err)
	}
	return isManager, nil
}
