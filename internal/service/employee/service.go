package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	activityRepo activity.ActivityRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	activityRepo activity.ActivityRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		activityRepo: activityRepo,
	}
}

// optional trims s and maps an empty value to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func applyEmploymentDetails(e *employee.Employee, joinDate, bankName, accountNumber, branchCode *string) {
	if joinDate != nil {
		e.JoinDate = nil
		if d, ok := validator.IsValidDate(strings.TrimSpace(*joinDate)); ok {
			e.JoinDate = &d
		}
	}
	if bankName != nil {
		e.BankName = nil
		if bank, ok := employee.CanonicalBank(*bankName); ok {
			e.BankName = &bank
		}
	}
	if accountNumber != nil {
		e.AccountNumber = optional(accountNumber)
	}
	if branchCode != nil {
		e.BranchCode = optional(branchCode)
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     strings.TrimSpace(req.FullName),
		Company:      employee.Company(req.Company),
		Department:   optional(req.Department),
		Position:     optional(req.Position),
		Status:       employee.StatusActive,
		BaseSalary:   req.BaseSalary,
	}
	if req.Status != nil {
		newEmployee.Status = employee.Status(*req.Status)
	}
	applyEmploymentDetails(&newEmployee, req.JoinDate, req.BankName, req.AccountNumber, req.BranchCode)

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.employeeRepo.ExistsByCode(ctx, newEmployee.EmployeeCode, nil)
		if err != nil {
			return fmt.Errorf("check employee code: %w", err)
		}
		if exists {
			return employee.ErrEmployeeCodeExists
		}

		created, err = s.employeeRepo.Create(ctx, newEmployee)
		if err != nil {
			return err
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionEmployeeCreated,
			Details: fmt.Sprintf("Added %s (%s) to %s", created.FullName, created.EmployeeCode, created.Company),
		})
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// Update implements employee.EmployeeService. Absent fields are kept; an
// empty string clears an optional field.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.FullName != nil {
			existing.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Company != nil {
			existing.Company = employee.Company(*req.Company)
		}
		if req.Department != nil {
			existing.Department = optional(req.Department)
		}
		if req.Position != nil {
			existing.Position = optional(req.Position)
		}
		if req.Status != nil {
			existing.Status = employee.Status(*req.Status)
		}
		if req.BaseSalary != nil {
			existing.BaseSalary = req.BaseSalary
		}
		applyEmploymentDetails(&existing, req.JoinDate, req.BankName, req.AccountNumber, req.BranchCode)

		updated, err = s.employeeRepo.Update(ctx, existing)
		if err != nil {
			return err
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionEmployeeUpdated,
			Details: fmt.Sprintf("Updated %s (%s)", updated.FullName, updated.EmployeeCode),
		})
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// Terminate implements employee.EmployeeService. Employees are never deleted.
func (s *EmployeeServiceImpl) Terminate(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var terminated employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.IsTerminated() {
			return employee.ErrEmployeeTerminated
		}

		if err := s.employeeRepo.UpdateStatus(ctx, id, employee.StatusTerminated); err != nil {
			return err
		}
		terminated, err = s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionEmployeeTerminated,
			Details: fmt.Sprintf("Terminated %s (%s)", terminated.FullName, terminated.EmployeeCode),
		})
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(terminated), nil
}
