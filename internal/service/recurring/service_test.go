package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/recurring"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/butters-makana/payroll-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Mock DeductionRepository ──

type mockDeductionRepo struct {
	deductions map[int64]recurring.Deduction
	nextID     int64
	employees  *servicetest.EmployeeRepo
}

func newMockDeductionRepo(employees *servicetest.EmployeeRepo) *mockDeductionRepo {
	return &mockDeductionRepo{deductions: make(map[int64]recurring.Deduction), employees: employees}
}

func (m *mockDeductionRepo) Create(ctx context.Context, d recurring.Deduction) (recurring.Deduction, error) {
	e, err := m.employees.GetByID(ctx, d.EmployeeID)
	if err != nil {
		return recurring.Deduction{}, err
	}
	m.nextID++
	d.ID = m.nextID
	d.EmployeeName, d.EmployeeCode, d.Company = e.FullName, e.EmployeeCode, string(e.Company)
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	m.deductions[d.ID] = d
	return d, nil
}

func (m *mockDeductionRepo) SetReferenceNumber(_ context.Context, id int64, reference string) error {
	d, ok := m.deductions[id]
	if !ok {
		return recurring.ErrDeductionNotFound
	}
	d.ReferenceNumber = &reference
	m.deductions[id] = d
	return nil
}

func (m *mockDeductionRepo) GetByID(_ context.Context, id int64) (recurring.Deduction, error) {
	d, ok := m.deductions[id]
	if !ok {
		return recurring.Deduction{}, recurring.ErrDeductionNotFound
	}
	return d, nil
}

func (m *mockDeductionRepo) Update(_ context.Context, d recurring.Deduction) (recurring.Deduction, error) {
	if _, ok := m.deductions[d.ID]; !ok {
		return recurring.Deduction{}, recurring.ErrDeductionNotFound
	}
	d.UpdatedAt = time.Now()
	m.deductions[d.ID] = d
	return d, nil
}

func (m *mockDeductionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.deductions[id]; !ok {
		return recurring.ErrDeductionNotFound
	}
	delete(m.deductions, id)
	return nil
}

func (m *mockDeductionRepo) List(_ context.Context, f recurring.Filter) ([]recurring.Deduction, error) {
	var out []recurring.Deduction
	for id := int64(1); id <= m.nextID; id++ {
		d, ok := m.deductions[id]
		if !ok {
			continue
		}
		if f.Frequency != nil && d.Frequency != *f.Frequency {
			continue
		}
		if f.Company != nil && d.Company != *f.Company {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func newTestService(t *testing.T) (*DeductionServiceImpl, *mockDeductionRepo, *servicetest.ActivityRepo, context.Context) {
	t.Helper()
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: 4, EmployeeCode: "BUT0004", FullName: "Thabo Nkosi", Company: employee.CompanyButters},
	)
	repo := newMockDeductionRepo(employees)
	activityRepo := &servicetest.ActivityRepo{}
	svc := NewDeductionService(&servicetest.Transactor{}, repo, activityRepo).(*DeductionServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC) }
	return svc, repo, activityRepo, servicetest.ActorContext(t, 3, user.RoleHRManager)
}

func TestCreate_AssignsReferenceNumber(t *testing.T) {
	svc, repo, activityRepo, ctx := newTestService(t)

	resp, err := svc.Create(ctx, map[string]any{
		"employee_id": 4,
		"name":        "Uniform replacement",
		"amount":      "120.00",
		"frequency":   "Monthly",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ReferenceNumber)
	assert.Equal(t, "RD-000001", *resp.ReferenceNumber)
	assert.Equal(t, "monthly", resp.Frequency)
	assert.Equal(t, "2025-07-01", resp.StartDate)
	assert.Nil(t, resp.EndDate)
	assert.Equal(t, "Pending", resp.Status)
	assert.False(t, resp.Approved)
	assert.Equal(t, "Thabo Nkosi", resp.EmployeeName)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "RD-000001", *stored.ReferenceNumber)

	assert.Equal(t, []activity.Action{activity.ActionRecurringCreated}, activityRepo.Actions())
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.Create(ctx, map[string]any{
		"employee_id": 4,
		"amount":      -5,
		"frequency":   "daily",
		"start_date":  "2025-08-01",
		"end_date":    "2025-07-01",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "frequency")
}

func TestUpdate_ApprovalAndEndDate(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	created, err := svc.Create(ctx, map[string]any{
		"employee_id": 4,
		"name":        "Garnishee order",
		"amount":      300,
		"frequency":   "weekly",
		"start_date":  "2025-07-07",
	})
	require.NoError(t, err)

	resp, err := svc.Update(ctx, created.ID, map[string]any{"approved": true, "end_date": "2025-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "Approved", resp.Status)
	assert.Equal(t, "2025-12-31", *resp.EndDate)
	assert.Equal(t, *created.ReferenceNumber, *resp.ReferenceNumber)

	_, err = svc.Update(ctx, created.ID, map[string]any{"end_date": "2025-07-01"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")
}

func TestDeleteAndList(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	for _, freq := range []string{"weekly", "monthly", "monthly"} {
		_, err := svc.Create(ctx, map[string]any{"employee_id": 4, "name": "Loan repayment", "amount": 50, "frequency": freq})
		require.NoError(t, err)
	}

	monthly, err := svc.List(ctx, recurring.ListDeductionsRequest{Frequency: "MONTHLY"})
	require.NoError(t, err)
	assert.Len(t, monthly, 2)

	require.NoError(t, svc.Delete(ctx, monthly[0].ID))
	_, err = svc.Get(ctx, monthly[0].ID)
	assert.ErrorIs(t, err, recurring.ErrDeductionNotFound)

	_, err = svc.List(ctx, recurring.ListDeductionsRequest{Frequency: "daily"})
	assert.Error(t, err)
}
