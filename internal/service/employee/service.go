package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/domain/position"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/hrsuite/hr-backend-go/internal/repository/postgresql"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type EmployeeServiceImpl struct {
	db              *database.DB
	employeeRepo    employee.EmployeeRepository
	userRepo        user.UserRepository
	positionRepo    position.PositionRepository
	auditSvc        audit.Service
	notificationSvc notification.Service
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	positionRepo position.PositionRepository,
	auditSvc audit.Service,
	notificationSvc notification.Service,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:              db,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		positionRepo:    positionRepo,
		auditSvc:        auditSvc,
		notificationSvc: notificationSvc,
	}
}

// CreateEmployee implements employee.EmployeeService. The user account
// and the employee record are created in one transaction.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	matricule := strings.ToUpper(strings.TrimSpace(req.Matricule))
	cin := strings.ToUpper(strings.TrimSpace(req.CIN))

	var errs validator.ValidationErrors
	if !validator.IsValidMatricule(matricule) {
		errs = append(errs, validator.ValidationError{
			Field:   "matricule",
			Message: "matricule must be 3-20 alphanumeric characters or hyphens",
		})
	}
	if !validator.IsValidCIN(cin) {
		errs = append(errs, validator.ValidationError{
			Field:   "cin",
			Message: "cin must be 4-20 alphanumeric characters",
		})
	}
	if req.PhoneNumber != nil && !validator.IsValidPhoneNumber(*req.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number format",
		})
	}
	if len(errs) > 0 {
		return employee.EmployeeResponse{}, errs
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if emailExists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	exists, err := s.employeeRepo.ExistsByMatriculeOrCIN(ctx, matricule, cin)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrMatriculeExists
	}

	if req.PositionID != nil {
		if _, err := s.positionRepo.GetByID(ctx, *req.PositionID); err != nil {
			return employee.EmployeeResponse{}, employee.ErrPositionNotFound
		}
	}
	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ManagerID); err != nil {
			return employee.EmployeeResponse{}, employee.ErrManagerNotFound
		}
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	var dateOfBirth *time.Time
	if req.DateOfBirth != nil {
		parsed, _ := validator.IsValidDate(*req.DateOfBirth)
		dateOfBirth = &parsed
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		newUser, err := s.userRepo.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         role,
			IsActive:     true,
			IsFirstLogin: true,
			CreatedBy:    &caller.UserID,
		})
		if err != nil {
			return err
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:             newUser.ID,
			FirstName:          req.FirstName,
			LastName:           req.LastName,
			Matricule:          matricule,
			CIN:                cin,
			PhoneNumber:        req.PhoneNumber,
			Address:            req.Address,
			DateOfBirth:        dateOfBirth,
			HireDate:           hireDate,
			Status:             employee.StatusActif,
			PositionID:         req.PositionID,
			ManagerID:          req.ManagerID,
			AnnualLeaveBalance: employee.DefaultAnnualLeaveBalance,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionCreate,
		EntityType: "employee",
		EntityID:   &created.ID,
		NewValues: map[string]interface{}{
			"matricule":  created.Matricule,
			"first_name": created.FirstName,
			"last_name":  created.LastName,
			"email":      req.Email,
			"role":       string(role),
		},
	})

	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:    created.UserID,
		Type:           notification.TypeAccountCreated,
		Title:          "Bienvenue",
		Message:        fmt.Sprintf("Bonjour %s, votre compte employé a été créé. Pensez à changer votre mot de passe.", created.FirstName),
		RecipientEmail: req.Email,
		ReferenceType:  refType(notification.RefUser),
		ReferenceID:    &created.UserID,
	})

	full, err := s.employeeRepo.GetByID(ctx, created.ID)
	if err != nil {
		return created.ToResponse(), nil
	}
	return full.ToResponse(), nil
}

// GetEmployee implements employee.EmployeeService. Employees may only
// see themselves; managers additionally see their direct reports.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	found, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if !caller.IsAdminRH() {
		isSelf := caller.EmployeeID != nil && *caller.EmployeeID == found.ID
		isReport := false
		if caller.IsManager() && caller.EmployeeID != nil {
			isReport, err = s.employeeRepo.IsManagerOf(ctx, *caller.EmployeeID, found.ID)
			if err != nil {
				return employee.EmployeeResponse{}, err
			}
		}
		if !isSelf && !isReport {
			return employee.EmployeeResponse{}, employee.ErrUnauthorized
		}
	}

	return found.ToResponse(), nil
}

// ListEmployees implements employee.EmployeeService. Managers are
// restricted to their own team.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	if caller.IsManager() {
		if caller.EmployeeID == nil {
			return nil, 0, employee.ErrNoEmployeeProfile
		}
		filter.ManagerID = caller.EmployeeID
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employees[i].ToResponse())
	}

	return responses, total, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	before, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if caller.IsManager() {
		if caller.EmployeeID == nil {
			return employee.EmployeeResponse{}, employee.ErrNoEmployeeProfile
		}
		isReport, err := s.employeeRepo.IsManagerOf(ctx, *caller.EmployeeID, before.ID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		if !isReport {
			return employee.EmployeeResponse{}, employee.ErrUnauthorized
		}
	}

	if req.PositionID != nil {
		if _, err := s.positionRepo.GetByID(ctx, *req.PositionID); err != nil {
			return employee.EmployeeResponse{}, employee.ErrPositionNotFound
		}
	}
	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ManagerID); err != nil {
			return employee.EmployeeResponse{}, employee.ErrManagerNotFound
		}
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionUpdate,
		EntityType: "employee",
		EntityID:   &updated.ID,
		OldValues: map[string]interface{}{
			"status":               string(before.Status),
			"position_id":          before.PositionID,
			"manager_id":           before.ManagerID,
			"annual_leave_balance": before.AnnualLeaveBalance.String(),
		},
		NewValues: map[string]interface{}{
			"status":               string(updated.Status),
			"position_id":          updated.PositionID,
			"manager_id":           updated.ManagerID,
			"annual_leave_balance": updated.AnnualLeaveBalance.String(),
		},
	})

	return updated.ToResponse(), nil
}

// DeleteEmployee implements employee.EmployeeService. Employees are
// never hard-deleted: status becomes QUITTE and the login is disabled.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	target, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if caller.EmployeeID != nil && *caller.EmployeeID == target.ID {
		return employee.ErrCannotDeleteSelf
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.employeeRepo.SetStatus(txCtx, target.ID, employee.StatusQuitte); err != nil {
			return err
		}
		return s.userRepo.SetActive(txCtx, target.UserID, false)
	})
	if err != nil {
		return err
	}

	s.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionDelete,
		EntityType: "employee",
		EntityID:   &target.ID,
		OldValues:  map[string]interface{}{"status": string(target.Status)},
		NewValues:  map[string]interface{}{"status": string(employee.StatusQuitte)},
	})

	return nil
}

// MyTeam implements employee.EmployeeService.
func (s *EmployeeServiceImpl) MyTeam(ctx context.Context) ([]employee.EmployeeResponse, error) {
	caller, err := claims.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if caller.EmployeeID == nil {
		return nil, employee.ErrNoEmployeeProfile
	}

	reports, err := s.employeeRepo.GetDirectReports(ctx, *caller.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, reports[i].ToResponse())
	}

	return responses, nil
}

func refType(rt notification.ReferenceType) *notification.ReferenceType {
	return &rt
}
