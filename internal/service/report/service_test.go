package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/report"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/butters-makana/payroll-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Mock ExportRepository ──

type mockExportRepo struct {
	exports []report.Export
}

func (m *mockExportRepo) Create(_ context.Context, e report.Export) (report.Export, error) {
	e.ID = int64(len(m.exports) + 1)
	e.CreatedAt = time.Now()
	m.exports = append(m.exports, e)
	return e, nil
}

func (m *mockExportRepo) GetByID(_ context.Context, id int64) (report.Export, error) {
	if id < 1 || id > int64(len(m.exports)) {
		return report.Export{}, report.ErrExportNotFound
	}
	return m.exports[id-1], nil
}

func (m *mockExportRepo) List(_ context.Context, f report.Filter) ([]report.Export, error) {
	var out []report.Export
	for i := len(m.exports) - 1; i >= 0 && len(out) < f.Limit; i-- {
		e := m.exports[i]
		if f.Format != nil && e.Format != *f.Format {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// ── Stub RecordRepository: only List is reached ──

type stubRecordRepo struct {
	payroll.RecordRepository
	records    []payroll.Record
	lastFilter payroll.RecordFilter
	listCalls  int
}

func (s *stubRecordRepo) List(_ context.Context, f payroll.RecordFilter) ([]payroll.Record, error) {
	s.listCalls++
	s.lastFilter = f
	var out []payroll.Record
	for _, r := range s.records {
		if len(f.Kinds) > 0 && r.Kind != f.Kinds[0] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func newTestService(t *testing.T) (*ExportServiceImpl, *stubRecordRepo, *servicetest.ActivityRepo, context.Context) {
	t.Helper()
	records := &stubRecordRepo{records: []payroll.Record{
		{ID: 1, Kind: payroll.KindOvertime},
		{ID: 2, Kind: payroll.KindOvertime},
		{ID: 3, Kind: payroll.KindLoan},
	}}
	activityRepo := &servicetest.ActivityRepo{}
	svc := NewExportService(&servicetest.Transactor{}, &mockExportRepo{}, records, activityRepo).(*ExportServiceImpl)
	return svc, records, activityRepo, servicetest.ActorContext(t, 4, user.RolePayrollOfficer)
}

func strPtr(s string) *string { return &s }

func TestRecord_CountsCoveredRecords(t *testing.T) {
	svc, records, activityRepo, ctx := newTestService(t)

	resp, err := svc.Record(ctx, report.CreateExportRequest{
		Type:      "Overtime",
		Format:    "XLSX",
		Company:   strPtr("Butters"),
		StartDate: strPtr("2025-05-01"),
		EndDate:   strPtr("2025-05-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.RecordCount)
	assert.Equal(t, "xlsx", resp.Format)
	assert.Equal(t, "2025-05-01", *resp.StartDate)

	require.Equal(t, 1, records.listCalls)
	assert.Equal(t, []payroll.Kind{payroll.KindOvertime}, records.lastFilter.Kinds)
	assert.Equal(t, "Butters", *records.lastFilter.Company)

	assert.Equal(t, []activity.Action{activity.ActionExportRecorded}, activityRepo.Actions())
}

func TestRecord_AllRecordsAndSuppliedCount(t *testing.T) {
	svc, records, _, ctx := newTestService(t)

	resp, err := svc.Record(ctx, report.CreateExportRequest{Type: report.TypeAllRecords, Format: "csv", Company: strPtr("all")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.RecordCount)
	assert.Nil(t, resp.Company)

	count := int64(12)
	resp, err = svc.Record(ctx, report.CreateExportRequest{Type: "Employees", Format: "pdf", RecordCount: &count})
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.RecordCount)
	assert.Equal(t, 1, records.listCalls)

	resp, err = svc.Record(ctx, report.CreateExportRequest{Type: "Employees", Format: "pdf"})
	require.NoError(t, err)
	assert.Zero(t, resp.RecordCount)
}

func TestRecord_Validation(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.Record(ctx, report.CreateExportRequest{
		Format:    "docx",
		StartDate: strPtr("2025-06-01"),
		EndDate:   strPtr("2025-05-01"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "format")
	assert.Contains(t, fields, "end_date")
}

func TestListAndGet(t *testing.T) {
	svc, _, _, ctx := newTestService(t)
	for _, format := range []string{"csv", "xlsx", "csv"} {
		_, err := svc.Record(ctx, report.CreateExportRequest{Type: "Loan", Format: format})
		require.NoError(t, err)
	}

	csv, err := svc.List(ctx, report.ListExportsRequest{Format: "CSV"})
	require.NoError(t, err)
	require.Len(t, csv, 2)
	assert.Equal(t, int64(3), csv[0].ID)

	_, err = svc.List(ctx, report.ListExportsRequest{Limit: "0"})
	assert.Error(t, err)

	_, err = svc.Get(ctx, 42)
	assert.True(t, errors.Is(err, report.ErrExportNotFound))
}
