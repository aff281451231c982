package dashboard

import (
	"context"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
)

type DashboardService interface {
	// GetDashboard runs its queries concurrently. The request filters the
	// record summary only.
	GetDashboard(ctx context.Context, req payroll.ListRecordsRequest) (DashboardResponse, error)
}
