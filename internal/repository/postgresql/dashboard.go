package postgresql

import (
	"context"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/dashboard"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetHeadcount returns employee counts grouped by company and status in a single query
func (r *dashboardRepositoryImpl) GetHeadcount(ctx context.Context) ([]dashboard.HeadcountRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company, status, COUNT(*)
		FROM employees
		GROUP BY company, status
		ORDER BY company, status
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, database.Wrap("get headcount", err)
	}
	defer rows.Close()

	result := []dashboard.HeadcountRow{}
	for rows.Next() {
		var row dashboard.HeadcountRow
		if err := rows.Scan(&row.Company, &row.Status, &row.Count); err != nil {
			return nil, database.Wrap("scan headcount", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("get headcount", err)
	}

	return result, nil
}

// GetCoverStats returns running deductions, active policies and this month's payments in single query
func (r *dashboardRepositoryImpl) GetCoverStats(ctx context.Context, day time.Time) (dashboard.CoverStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM recurring_deductions
				WHERE status = 'Approved' AND start_date <= $1 AND (end_date IS NULL OR end_date >= $1)),
			(SELECT COUNT(*) FROM insurance_policies
				WHERE status = 'Active' AND start_date <= $1 AND (end_date IS NULL OR end_date >= $1)),
			(SELECT COUNT(*) FROM policy_payments WHERE month = $2)
	`

	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var stats dashboard.CoverStats
	err := q.QueryRow(ctx, query, day, day.Format(validator.MonthLayout)).Scan(
		&stats.ActiveRecurringDeductions, &stats.ActivePolicies, &stats.PolicyPaymentsThisMonth,
	)
	if err != nil {
		return dashboard.CoverStats{}, database.Wrap("get cover stats", err)
	}
	return stats, nil
}
