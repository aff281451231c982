package dashboard

import (
	"context"
	"time"
)

// HeadcountRow is the number of employees in one company and status.
type HeadcountRow struct {
	Company string
	Status  string
	Count   int64
}

// CoverStats counts standing deductions and policies in force on a day.
type CoverStats struct {
	ActiveRecurringDeductions int64
	ActivePolicies            int64
	PolicyPaymentsThisMonth   int64
}

type DashboardRepository interface {
	// GetHeadcount groups employees by company and status in a single query.
	GetHeadcount(ctx context.Context) ([]HeadcountRow, error)

	// GetCoverStats counts approved recurring deductions running on day,
	// active insurance policies, and payments recorded for day's month.
	GetCoverStats(ctx context.Context, day time.Time) (CoverStats, error)
}
