package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/dashboard"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboardRepo dashboard.DashboardRepository
	recordService payroll.RecordService
	activityRepo  activity.ActivityRepository
	now           func() time.Time
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	recordService payroll.RecordService,
	activityRepo activity.ActivityRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo: dashboardRepo,
		recordService: recordService,
		activityRepo:  activityRepo,
		now:           time.Now,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines,
// one query each.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req payroll.ListRecordsRequest) (dashboard.DashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	var (
		summary   payroll.Summary
		headcount []dashboard.HeadcountRow
		cover     dashboard.CoverStats
		recent    []activity.Entry
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Record summary for the requested filter
	g.Go(func() error {
		var err error
		summary, err = s.recordService.Summary(gCtx, req)
		if err != nil {
			return fmt.Errorf("record summary: %w", err)
		}
		return nil
	})

	// 2. Headcount by company and status
	g.Go(func() error {
		var err error
		headcount, err = s.dashboardRepo.GetHeadcount(gCtx)
		if err != nil {
			return fmt.Errorf("headcount: %w", err)
		}
		return nil
	})

	// 3. Deductions and policies in force today
	g.Go(func() error {
		var err error
		cover, err = s.dashboardRepo.GetCoverStats(gCtx, s.now())
		if err != nil {
			return fmt.Errorf("cover stats: %w", err)
		}
		return nil
	})

	// 4. Latest activity
	g.Go(func() error {
		var err error
		recent, err = s.activityRepo.List(gCtx, activity.Filter{Limit: dashboard.RecentActivityLimit})
		if err != nil {
			return fmt.Errorf("recent activity: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp := dashboard.DashboardResponse{
		Records:   summary,
		Headcount: dashboard.NewHeadcountResponse(headcount),
		Cover: dashboard.CoverResponse{
			ActiveRecurringDeductions: cover.ActiveRecurringDeductions,
			ActivePolicies:            cover.ActivePolicies,
			PolicyPaymentsThisMonth:   cover.PolicyPaymentsThisMonth,
		},
		RecentActivity: make([]activity.EntryResponse, 0, len(recent)),
	}
	for _, e := range recent {
		resp.RecentActivity = append(resp.RecentActivity, activity.NewEntryResponse(e))
	}
	return resp, nil
}
