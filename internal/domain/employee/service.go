package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates the employee record and its user account (admin RH only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID (with role-based access control)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists employees with filters (manager+ only)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, int64, error)

	// UpdateEmployee applies an allow-listed partial update (manager+ only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee soft deletes: status becomes QUITTE and the account is deactivated
	DeleteEmployee(ctx context.Context, id string) error

	// MyTeam lists the direct reports of the authenticated manager
	MyTeam(ctx context.Context) ([]EmployeeResponse, error)
}
