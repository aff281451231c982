package recurring

import (
	"strconv"
	"strings"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ListDeductionsRequest struct {
	Company    string
	EmployeeID string
	Frequency  string
	Status     string
}

func (r *ListDeductionsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Company != "" && !strings.EqualFold(r.Company, "all") && !validator.IsInSlice(r.Company, []string{"Butters", "Makana"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "company",
			Message: "company must be one of: all, Butters, Makana",
		})
	}

	if r.EmployeeID != "" {
		if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err != nil || id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must be a positive integer",
			})
		}
	}

	if r.Frequency != "" && !validator.IsInSlice(strings.ToLower(r.Frequency), Frequencies) {
		errs = append(errs, validator.ValidationError{
			Field:   "frequency",
			Message: "frequency must be one of: " + strings.Join(Frequencies, ", "),
		})
	}

	if r.Status != "" && !validator.IsInSlice(r.Status, payroll.Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(payroll.Statuses, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r ListDeductionsRequest) ToFilter() Filter {
	var filter Filter
	if r.Company != "" && !strings.EqualFold(r.Company, "all") {
		c := r.Company
		filter.Company = &c
	}
	if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err == nil {
		filter.EmployeeID = &id
	}
	if r.Frequency != "" {
		f := Frequency(strings.ToLower(r.Frequency))
		filter.Frequency = &f
	}
	if r.Status != "" {
		s := payroll.Status(r.Status)
		filter.Status = &s
	}
	return filter
}

type Filter struct {
	Company    *string
	EmployeeID *int64
	Frequency  *Frequency
	Status     *payroll.Status
}

type DeductionResponse struct {
	ID              int64           `json:"id"`
	ReferenceNumber *string         `json:"reference_number"`
	EmployeeID      int64           `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	EmployeeCode    string          `json:"employee_code"`
	Company         string          `json:"company"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	StartDate       string          `json:"start_date"`
	EndDate         *string         `json:"end_date"`
	Frequency       string          `json:"frequency"`
	Status          string          `json:"status"`
	Approved        bool            `json:"approved"`
	DocumentImage   *string         `json:"document_image,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedBy       *int64          `json:"created_by,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

func NewDeductionResponse(d Deduction) DeductionResponse {
	resp := DeductionResponse{
		ID:              d.ID,
		ReferenceNumber: d.ReferenceNumber,
		EmployeeID:      d.EmployeeID,
		EmployeeName:    d.EmployeeName,
		EmployeeCode:    d.EmployeeCode,
		Company:         d.Company,
		Name:            d.Name,
		Amount:          d.Amount,
		StartDate:       d.StartDate.Format(validator.DateLayout),
		Frequency:       string(d.Frequency),
		Status:          string(d.Status),
		Approved:        d.Approved(),
		DocumentImage:   d.DocumentImage,
		Notes:           d.Notes,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       d.UpdatedAt.Format(time.RFC3339),
	}
	if d.EndDate != nil {
		end := d.EndDate.Format(validator.DateLayout)
		resp.EndDate = &end
	}
	return resp
}
