package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id int64) (EmployeeResponse, error)
	List(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Terminate(ctx context.Context, id int64) (EmployeeResponse, error)
}
