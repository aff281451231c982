package maternity

import (
	"strconv"
	"strings"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

type ListRecordsRequest struct {
	Company    string
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (r *ListRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Company != "" && !strings.EqualFold(r.Company, "all") && !validator.IsInSlice(r.Company, []string{"Butters", "Makana"}) {
		errs.Add("company", "company must be one of: all, Butters, Makana")
	}

	if r.EmployeeID != "" {
		if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err != nil || id <= 0 {
			errs.Add("employee_id", "employee_id must be a positive integer")
		}
	}

	start, startOK := validator.ParseCalendarDate(r.StartDate)
	if r.StartDate != "" && !startOK {
		errs.Add("start_date", "start_date must be a valid date (YYYY-MM-DD)")
	}
	end, endOK := validator.ParseCalendarDate(r.EndDate)
	if r.EndDate != "" && !endOK {
		errs.Add("end_date", "end_date must be a valid date (YYYY-MM-DD)")
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end_date", "end_date must be on or after start_date")
	}

	return errs.Err()
}

func (r ListRecordsRequest) ToFilter() Filter {
	var filter Filter
	if r.Company != "" && !strings.EqualFold(r.Company, "all") {
		c := r.Company
		filter.Company = &c
	}
	if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err == nil {
		filter.EmployeeID = &id
	}
	if d, ok := validator.ParseCalendarDate(r.StartDate); ok {
		filter.StartDate = &d
	}
	if d, ok := validator.ParseCalendarDate(r.EndDate); ok {
		filter.EndDate = &d
	}
	return filter
}

// Filter selects records overlapping [StartDate, EndDate] when set.
type Filter struct {
	Company    *string
	EmployeeID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

type RecordResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EmployeeCode string  `json:"employee_code"`
	Company      string  `json:"company"`
	FromDate     string  `json:"from_date"`
	ToDate       string  `json:"to_date"`
	TotalDays    int64   `json:"total_days"`
	Comments     *string `json:"comments,omitempty"`
	CreatedBy    *int64  `json:"created_by,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		EmployeeCode: r.EmployeeCode,
		Company:      r.Company,
		FromDate:     r.FromDate.Format(validator.DateLayout),
		ToDate:       r.ToDate.Format(validator.DateLayout),
		TotalDays:    r.TotalDays(),
		Comments:     r.Comments,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
