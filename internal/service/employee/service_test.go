package employee

import (
	"context"
	"testing"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/butters-makana/payroll-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (employee.EmployeeService, *servicetest.EmployeeRepo, *servicetest.ActivityRepo, context.Context) {
	t.Helper()
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: 1, EmployeeCode: "BUT0001", FullName: "Sipho Dlamini", Company: employee.CompanyButters, Department: strPtr("Guarding")},
	)
	activityRepo := &servicetest.ActivityRepo{}
	svc := NewEmployeeService(&servicetest.Transactor{}, employees, activityRepo)
	return svc, employees, activityRepo, servicetest.ActorContext(t, 2, user.RoleHRManager)
}

func TestCreate(t *testing.T) {
	svc, _, activityRepo, ctx := newTestService(t)

	salary := decimal.RequireFromString("8500.00")
	resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		EmployeeCode:  "mak0002",
		FullName:      " Lerato Mokoena ",
		Company:       "Makana",
		JoinDate:      strPtr("2024-02-01"),
		BankName:      strPtr("capitec"),
		AccountNumber: strPtr("1234567890"),
		Department:    strPtr(""),
		BaseSalary:    &salary,
	})
	require.NoError(t, err)
	assert.Equal(t, "MAK0002", resp.EmployeeCode)
	assert.Equal(t, "Lerato Mokoena", resp.FullName)
	assert.Equal(t, "Active", resp.Status)
	assert.Equal(t, "Capitec", *resp.BankName)
	assert.Equal(t, "2024-02-01", *resp.JoinDate)
	assert.Nil(t, resp.Department)
	assert.Equal(t, []activity.Action{activity.ActionEmployeeCreated}, activityRepo.Actions())
}

func TestCreate_DuplicateCode(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{EmployeeCode: "but0001", FullName: "Copy", Company: "Butters"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{EmployeeCode: "??", Company: "Acme", BankName: strPtr("Monzo")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "employee_code")
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "company")
	assert.Contains(t, fields, "bank_name")
}

func TestUpdate_PartialAndClear(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	resp, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: 1, Position: strPtr("Supervisor"), Department: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Supervisor", *resp.Position)
	assert.Nil(t, resp.Department)
	assert.Equal(t, "Sipho Dlamini", resp.FullName)

	_, err = svc.Update(ctx, employee.UpdateEmployeeRequest{ID: 42, FullName: strPtr("Ghost")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTerminate(t *testing.T) {
	svc, _, activityRepo, ctx := newTestService(t)

	resp, err := svc.Terminate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Terminated", resp.Status)

	_, err = svc.Terminate(ctx, 1)
	assert.ErrorIs(t, err, employee.ErrEmployeeTerminated)

	_, err = svc.Terminate(ctx, 42)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.Equal(t, []activity.Action{activity.ActionEmployeeTerminated}, activityRepo.Actions())
}

func TestList(t *testing.T) {
	svc, _, _, ctx := newTestService(t)
	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{EmployeeCode: "MAK0002", FullName: "Lerato Mokoena", Company: "Makana"})
	require.NoError(t, err)

	all, err := svc.List(ctx, employee.ListEmployeesRequest{Company: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	makana, err := svc.List(ctx, employee.ListEmployeesRequest{Company: "Makana"})
	require.NoError(t, err)
	require.Len(t, makana, 1)
	assert.Equal(t, "MAK0002", makana[0].EmployeeCode)

	found, err := svc.List(ctx, employee.ListEmployeesRequest{Search: "dlam"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = svc.List(ctx, employee.ListEmployeesRequest{Status: "Retired"})
	assert.Error(t, err)
}
