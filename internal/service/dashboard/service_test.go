package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/dashboard"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDashboardRepo struct {
	headcount []dashboard.HeadcountRow
	cover     dashboard.CoverStats
	err       error
	coverDay  time.Time
}

func (m *mockDashboardRepo) GetHeadcount(context.Context) ([]dashboard.HeadcountRow, error) {
	return m.headcount, m.err
}

func (m *mockDashboardRepo) GetCoverStats(_ context.Context, day time.Time) (dashboard.CoverStats, error) {
	m.coverDay = day
	return m.cover, nil
}

// stubRecordService answers Summary only.
type stubRecordService struct {
	payroll.RecordService
	summary payroll.Summary
	lastReq payroll.ListRecordsRequest
}

func (s *stubRecordService) Summary(_ context.Context, req payroll.ListRecordsRequest) (payroll.Summary, error) {
	s.lastReq = req
	return s.summary, nil
}

func TestGetDashboard(t *testing.T) {
	repo := &mockDashboardRepo{
		headcount: []dashboard.HeadcountRow{
			{Company: "Butters", Status: "Active", Count: 40},
			{Company: "Butters", Status: "Terminated", Count: 3},
			{Company: "Makana", Status: "Active", Count: 25},
			{Company: "Makana", Status: "On Leave", Count: 2},
		},
		cover: dashboard.CoverStats{ActiveRecurringDeductions: 6, ActivePolicies: 11, PolicyPaymentsThisMonth: 9},
	}
	records := &stubRecordService{summary: payroll.Summary{ApprovedCount: 4, PendingCount: 1}}
	activityRepo := &servicetest.ActivityRepo{}
	for i := 0; i < dashboard.RecentActivityLimit+5; i++ {
		require.NoError(t, activityRepo.Create(context.Background(), activity.Entry{Action: activity.ActionRecordCreated}))
	}

	svc := NewDashboardService(repo, records, activityRepo).(*DashboardServiceImpl)
	today := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	resp, err := svc.GetDashboard(context.Background(), payroll.ListRecordsRequest{Company: "Makana"})
	require.NoError(t, err)

	assert.Equal(t, "Makana", records.lastReq.Company)
	assert.Equal(t, int64(4), resp.Records.ApprovedCount)

	assert.Equal(t, int64(43), resp.Headcount.Butters.Total)
	assert.Equal(t, int64(3), resp.Headcount.Butters.Terminated)
	assert.Equal(t, int64(2), resp.Headcount.Makana.OnLeave)
	assert.Equal(t, int64(65), resp.Headcount.Total.Active)
	assert.Equal(t, int64(70), resp.Headcount.Total.Total)

	assert.Equal(t, int64(11), resp.Cover.ActivePolicies)
	assert.Equal(t, today, repo.coverDay)
	assert.Len(t, resp.RecentActivity, dashboard.RecentActivityLimit)
}

func TestGetDashboard_PropagatesErrors(t *testing.T) {
	repo := &mockDashboardRepo{err: errors.New("connection reset")}
	svc := NewDashboardService(repo, &stubRecordService{}, &servicetest.ActivityRepo{})

	_, err := svc.GetDashboard(context.Background(), payroll.ListRecordsRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "headcount")

	_, err = svc.GetDashboard(context.Background(), payroll.ListRecordsRequest{Company: "Acme"})
	assert.Error(t, err)
}
