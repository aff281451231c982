package dashboard

import (
	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
)

// RecentActivityLimit is how many activity entries the dashboard shows.
const RecentActivityLimit = 10

type CompanyHeadcount struct {
	Active     int64 `json:"active"`
	OnLeave    int64 `json:"on_leave"`
	Terminated int64 `json:"terminated"`
	Total      int64 `json:"total"`
}

type HeadcountResponse struct {
	Butters CompanyHeadcount `json:"butters"`
	Makana  CompanyHeadcount `json:"makana"`
	Total   CompanyHeadcount `json:"total"`
}

// NewHeadcountResponse folds grouped rows into per-company counts.
func NewHeadcountResponse(rows []HeadcountRow) HeadcountResponse {
	var resp HeadcountResponse
	for _, row := range rows {
		var target *CompanyHeadcount
		switch row.Company {
		case "Butters":
			target = &resp.Butters
		case "Makana":
			target = &resp.Makana
		default:
			continue
		}
		for _, h := range []*CompanyHeadcount{target, &resp.Total} {
			switch row.Status {
			case "Active":
				h.Active += row.Count
			case "On Leave":
				h.OnLeave += row.Count
			case "Terminated":
				h.Terminated += row.Count
			}
			h.Total += row.Count
		}
	}
	return resp
}

type CoverResponse struct {
	ActiveRecurringDeductions int64 `json:"active_recurring_deductions"`
	ActivePolicies            int64 `json:"active_policies"`
	PolicyPaymentsThisMonth   int64 `json:"policy_payments_this_month"`
}

type DashboardResponse struct {
	Records        payroll.Summary          `json:"records"`
	Headcount      HeadcountResponse        `json:"headcount"`
	Cover          CoverResponse            `json:"cover"`
	RecentActivity []activity.EntryResponse `json:"recent_activity"`
}
