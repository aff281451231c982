package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	ExistsByCode(ctx context.Context, code string, excludeID *int64) (bool, error)
}
