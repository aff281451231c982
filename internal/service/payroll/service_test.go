package payroll

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/butters-makana/payroll-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Mock RecordRepository ──

type mockRecordRepo struct {
	mu        sync.Mutex
	records   map[int64]payroll.Record
	archived  map[int64]payroll.Record
	nextID    int64
	employees *servicetest.EmployeeRepo
}

func newMockRecordRepo(employees *servicetest.EmployeeRepo) *mockRecordRepo {
	return &mockRecordRepo{
		records:   make(map[int64]payroll.Record),
		archived:  make(map[int64]payroll.Record),
		employees: employees,
	}
}

func (m *mockRecordRepo) join(ctx context.Context, r payroll.Record) (payroll.Record, error) {
	e, err := m.employees.GetByID(ctx, r.EmployeeID)
	if err != nil {
		return payroll.Record{}, &database.PersistenceError{
			Op:             "insert payroll record",
			Code:           "23503",
			ConstraintName: "payroll_records_employee_id_fkey",
			Constraint:     true,
			Err:            err,
		}
	}
	r.EmployeeName = e.FullName
	r.EmployeeCode = e.EmployeeCode
	r.Company = string(e.Company)
	return r, nil
}

func (m *mockRecordRepo) Create(ctx context.Context, r payroll.Record) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.join(ctx, r)
	if err != nil {
		return payroll.Record{}, err
	}
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.records[r.ID] = r
	return r, nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id int64) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockRecordRepo) Update(ctx context.Context, r payroll.Record) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.ID]; !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	r, err := m.join(ctx, r)
	if err != nil {
		return payroll.Record{}, err
	}
	r.UpdatedAt = time.Now()
	m.records[r.ID] = r
	return r, nil
}

func (m *mockRecordRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return payroll.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockRecordRepo) List(_ context.Context, f payroll.RecordFilter) ([]payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.Record
	for _, r := range m.records {
		if f.Company != nil && r.Company != *f.Company {
			continue
		}
		if f.StartDate != nil && r.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && r.Date.After(*f.EndDate) {
			continue
		}
		if len(f.Kinds) > 0 && !containsKind(f.Kinds, r.Kind) {
			continue
		}
		if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockRecordRepo) Archive(_ context.Context, kinds []payroll.Kind, _ *int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var moved int64
	for id, r := range m.records {
		if containsKind(kinds, r.Kind) {
			m.archived[id] = r
			delete(m.records, id)
			moved++
		}
	}
	return moved, nil
}

func containsKind(kinds []payroll.Kind, k payroll.Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// ── Helpers ──

type fixture struct {
	svc       *RecordServiceImpl
	records   *mockRecordRepo
	employees *servicetest.EmployeeRepo
	activity  *servicetest.ActivityRepo
	tx        *servicetest.Transactor
	ctx       context.Context
}

var testNow = time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) fixture {
	t.Helper()

	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: 1, EmployeeCode: "BUT0001", FullName: "Sipho Dlamini", Company: employee.CompanyButters},
		employee.Employee{ID: 2, EmployeeCode: "MAK0002", FullName: "Lerato Mokoena", Company: employee.CompanyMakana},
	)
	records := newMockRecordRepo(employees)
	activityRepo := &servicetest.ActivityRepo{}
	tx := &servicetest.Transactor{}

	svc := NewRecordService(tx, records, employees, activityRepo).(*RecordServiceImpl)
	svc.now = func() time.Time { return testNow }

	return fixture{
		svc:       svc,
		records:   records,
		employees: employees,
		activity:  activityRepo,
		tx:        tx,
		ctx:       servicetest.ActorContext(t, 9, user.RolePayrollOfficer),
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

// ── Create ──

func TestCreate_LeaveDerivesTotalDays(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(f.ctx, payroll.KindLeave, map[string]any{
		"employee_id": 1,
		"leave_type":  "annual",
		"start_date":  "2025-05-01",
		"end_date":    "2025-05-05",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.TotalDays)
	assert.Equal(t, int64(5), *resp.TotalDays)
	assert.Equal(t, "Annual", *resp.LeaveType)
	assert.Equal(t, "Pending", resp.Status)
	assert.False(t, resp.Approved)
	assert.Equal(t, "Sipho Dlamini", resp.EmployeeName)
	assert.Equal(t, "Butters", resp.Company)
	assert.Equal(t, "2025-05-20", resp.Date)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, int64(9), *resp.CreatedBy)

	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, []activity.Action{activity.ActionRecordCreated}, f.activity.Actions())
}

func TestCreate_MonetaryDefaults(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(f.ctx, payroll.KindAdvance, map[string]any{
		"employee_id": "2",
		"amount":      "1500.50",
		"date":        "2025-05-03",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pending", resp.Status)
	assert.False(t, resp.Approved)
	require.NotNil(t, resp.Recurring)
	assert.False(t, *resp.Recurring)
	assert.Equal(t, "1500.5", resp.Amount.String())
	assert.Equal(t, "2025-05-03", resp.Date)
	assert.Equal(t, "Makana", resp.Company)
}

func TestCreate_OvertimeNeverDerivesAmount(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(f.ctx, payroll.KindOvertime, map[string]any{
		"employee_id": 1,
		"hours":       "6",
		"rate":        "1.5",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.Amount)
	assert.Equal(t, "6", resp.Hours.String())
	assert.Equal(t, "1.5", resp.Rate.String())
}

func TestCreate_ApprovedAlias(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(f.ctx, payroll.KindOvertime, map[string]any{
		"employee_id": 1,
		"hours":       4,
		"rate":        2,
		"approved":    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Approved", resp.Status)
	assert.True(t, resp.Approved)

	_, err = f.svc.Create(f.ctx, payroll.KindOvertime, map[string]any{
		"employee_id": 1,
		"hours":       4,
		"rate":        2,
		"approved":    true,
		"status":      "Rejected",
	})
	assert.Contains(t, fieldErrors(t, err), "approved")
}

func TestCreate_TerminationEndsEmployment(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(f.ctx, payroll.KindTermination, map[string]any{
		"employee_id": 2,
		"reason":      "Resignation",
		"end_date":    "2025-05-31",
		"amount":      "8200",
	})
	require.NoError(t, err)
	assert.Equal(t, "Resignation", *resp.Reason)
	assert.Equal(t, "2025-05-31", *resp.EndDate)

	emp, err := f.employees.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusTerminated, emp.Status)
}

func TestTermination_FollowsRecordThroughUpdateAndDelete(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(f.ctx, payroll.KindTermination, map[string]any{"employee_id": 2, "reason": "Dismissal"})
	require.NoError(t, err)

	status := func(id int64) employee.Status {
		emp, err := f.employees.GetByID(context.Background(), id)
		require.NoError(t, err)
		return emp.Status
	}
	require.Equal(t, employee.StatusTerminated, status(2))

	_, err = f.svc.Update(f.ctx, payroll.KindTermination, resp.ID, map[string]any{"employee_id": 1})
	require.NoError(t, err)
	assert.Equal(t, employee.StatusTerminated, status(1))
	assert.Equal(t, employee.StatusActive, status(2))

	require.NoError(t, f.svc.Delete(f.ctx, payroll.KindTermination, resp.ID))
	assert.Equal(t, employee.StatusActive, status(1))
}

func TestTermination_DeleteKeepsStatusWhileAnotherRemains(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(f.ctx, payroll.KindTermination, map[string]any{"employee_id": 2, "reason": "Dismissal"})
	require.NoError(t, err)
	_, err = f.svc.Create(f.ctx, payroll.KindTermination, map[string]any{"employee_id": 2, "reason": "Resignation"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(f.ctx, payroll.KindTermination, first.ID))

	emp, err := f.employees.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusTerminated, emp.Status)
}

func TestCreate_ValidationFailsBeforeWriting(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, payroll.KindLeave, map[string]any{
		"record_type": "Loan",
		"employee_id": 1,
		"leave_type":  "Holiday",
		"start_date":  "2025-05-10",
	})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "record_type")
	assert.Contains(t, fields, "leave_type")
	assert.Contains(t, fields, "end_date")

	assert.Equal(t, 0, f.tx.Calls)
	assert.Empty(t, f.activity.Entries)
}

func TestCreate_UnknownEmployeeIsConstraintViolation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, payroll.KindLoan, map[string]any{
		"employee_id": 99,
		"amount":      100,
	})
	require.Error(t, err)
	assert.True(t, database.IsConstraintViolation(err))
	assert.Empty(t, f.activity.Entries)
}

func TestCreate_RequiresActor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), payroll.KindLoan, map[string]any{
		"employee_id": 1,
		"amount":      100,
	})
	assert.ErrorIs(t, err, jwt.ErrNoActor)
}

// ── Update ──

func createLeave(t *testing.T, f fixture) payroll.RecordResponse {
	t.Helper()
	resp, err := f.svc.Create(f.ctx, payroll.KindLeave, map[string]any{
		"employee_id": 1,
		"leave_type":  "Sick",
		"start_date":  "2025-05-01",
		"end_date":    "2025-05-05",
		"notes":       "doctor's note supplied",
	})
	require.NoError(t, err)
	return resp
}

func TestUpdate_RecomputesTotalDaysWhenDatesChange(t *testing.T) {
	f := newFixture(t)
	created := createLeave(t, f)

	resp, err := f.svc.Update(f.ctx, payroll.KindLeave, created.ID, map[string]any{
		"end_date": "2025-05-10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), *resp.TotalDays)
	assert.Equal(t, "Sick", *resp.LeaveType)
	assert.Equal(t, "doctor's note supplied", *resp.Notes)
}

func TestUpdate_KeepsManualTotalDays(t *testing.T) {
	f := newFixture(t)
	created := createLeave(t, f)

	resp, err := f.svc.Update(f.ctx, payroll.KindLeave, created.ID, map[string]any{
		"end_date":   "2025-05-10",
		"total_days": 6,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), *resp.TotalDays)

	// A later unrelated edit keeps the override.
	resp, err = f.svc.Update(f.ctx, payroll.KindLeave, created.ID, map[string]any{
		"status": "Approved",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), *resp.TotalDays)
	assert.True(t, resp.Approved)
}

func TestUpdate_RejectsInvertedSpan(t *testing.T) {
	f := newFixture(t)
	created := createLeave(t, f)

	_, err := f.svc.Update(f.ctx, payroll.KindLeave, created.ID, map[string]any{
		"start_date": "2025-06-01",
	})
	assert.Contains(t, fieldErrors(t, err), "end_date")
}

func TestUpdate_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	created := createLeave(t, f)

	patch := map[string]any{
		"leave_type": "Sick",
		"start_date": "2025-05-01",
		"end_date":   "2025-05-05",
	}
	first, err := f.svc.Update(f.ctx, payroll.KindLeave, created.ID, patch)
	require.NoError(t, err)
	second, err := f.svc.Update(f.ctx, payroll.KindLeave, created.ID, patch)
	require.NoError(t, err)

	first.UpdatedAt, second.UpdatedAt, created.UpdatedAt = "", "", ""
	assert.Equal(t, first, second)
	assert.Equal(t, created, first)
}

func TestUpdate_UnapprovingReturnsToPending(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, payroll.KindBankAccountChange, map[string]any{
		"employee_id":    1,
		"bank_name":      "capitec",
		"account_number": "1234567890",
		"approved":       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Capitec", *created.BankName)
	assert.Equal(t, "Approved", created.Status)

	resp, err := f.svc.Update(f.ctx, payroll.KindBankAccountChange, created.ID, map[string]any{
		"approved": false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Status)
}

func TestUpdate_OtherKindIsNotFound(t *testing.T) {
	f := newFixture(t)
	created := createLeave(t, f)

	_, err := f.svc.Update(f.ctx, payroll.KindLoan, created.ID, map[string]any{"amount": 10})
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}

// ── Delete ──

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	f := newFixture(t)
	created := createLeave(t, f)

	require.NoError(t, f.svc.Delete(f.ctx, payroll.KindLeave, created.ID))

	_, err := f.svc.Get(f.ctx, payroll.KindLeave, created.ID)
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)

	err = f.svc.Delete(f.ctx, payroll.KindLeave, created.ID)
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)

	assert.Equal(t, []activity.Action{activity.ActionRecordCreated, activity.ActionRecordDeleted}, f.activity.Actions())
}

// ── List, Summary, Archive ──

func seedMixed(t *testing.T, f fixture) {
	t.Helper()
	inputs := []struct {
		kind payroll.Kind
		raw  map[string]any
	}{
		{payroll.KindAdvance, map[string]any{"employee_id": 1, "amount": "500", "date": "2025-05-02"}},
		{payroll.KindLoan, map[string]any{"employee_id": 2, "amount": "1200", "date": "2025-05-01", "recurring": true}},
		{payroll.KindCommission, map[string]any{"employee_id": 1, "amount": "300", "date": "2025-04-28", "status": "Approved"}},
		{payroll.KindStandbyShift, map[string]any{"employee_id": 2, "hours": "12", "amount": "600", "date": "2025-05-04"}},
	}
	for _, in := range inputs {
		_, err := f.svc.Create(f.ctx, in.kind, in.raw)
		require.NoError(t, err)
	}
}

func TestList_FiltersAndOrders(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)

	all, err := f.svc.List(f.ctx, payroll.ListRecordsRequest{Company: "all"})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Commission", all[0].RecordType)
	assert.Equal(t, "Loan", all[1].RecordType)

	makana, err := f.svc.List(f.ctx, payroll.ListRecordsRequest{Company: "Makana", StartDate: "2025-05-01", EndDate: "2025-05-01"})
	require.NoError(t, err)
	require.Len(t, makana, 1)
	assert.Equal(t, "Lerato Mokoena", makana[0].EmployeeName)

	_, err = f.svc.List(f.ctx, payroll.ListRecordsRequest{RecordType: "Bonus"})
	assert.Contains(t, fieldErrors(t, err), "record_type")
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)

	s, err := f.svc.Summary(f.ctx, payroll.ListRecordsRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), s.Butters.Count)
	assert.Equal(t, "800", s.Butters.Amount.String())
	assert.Equal(t, int64(2), s.Makana.Count)
	assert.Equal(t, "1800", s.Makana.Amount.String())
	assert.Equal(t, "12", s.Makana.Hours.String())
	assert.Equal(t, int64(4), s.Total.Count)
	assert.Equal(t, int64(1), s.RecurringCount)
	assert.Equal(t, int64(1), s.ApprovedCount)
	assert.Equal(t, int64(3), s.PendingCount)
}

func TestArchive_MovesSelectedKinds(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)

	resp, err := f.svc.Archive(f.ctx, payroll.ArchiveRequest{RecordTypes: []string{"Advance", "loan", "Advance"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Archived)
	assert.Equal(t, []string{"Advance", "Loan"}, resp.RecordTypes)

	remaining, err := f.svc.List(f.ctx, payroll.ListRecordsRequest{RecordType: "Advance,Loan"})
	require.NoError(t, err)
	assert.Empty(t, remaining)

	all, err := f.svc.List(f.ctx, payroll.ListRecordsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestArchive_RequiresSelection(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Archive(f.ctx, payroll.ArchiveRequest{})
	assert.ErrorIs(t, err, payroll.ErrNoKindsSelected)
}
