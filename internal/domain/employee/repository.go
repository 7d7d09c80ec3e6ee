package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByMatriculeOrCIN(ctx context.Context, matricule, cin string) (bool, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	GetDirectReports(ctx context.Context, managerID string) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	SetStatus(ctx context.Context, id string, status Status) error
	AdjustLeaveBalance(ctx context.Context, id string, delta decimal.Decimal) error
	IsManagerOf(ctx context.Context, managerEmployeeID, employeeID string) (bool, error)
}
