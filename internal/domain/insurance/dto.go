package insurance

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ListPoliciesRequest struct {
	Company    string
	EmployeeID string
	Status     string
	Insurer    string
}

func (r *ListPoliciesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Company != "" && !strings.EqualFold(r.Company, "all") && !validator.IsInSlice(r.Company, []string{"Butters", "Makana"}) {
		errs.Add("company", "company must be one of: all, Butters, Makana")
	}

	if r.EmployeeID != "" {
		if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err != nil || id <= 0 {
			errs.Add("employee_id", "employee_id must be a positive integer")
		}
	}

	if r.Status != "" && !validator.IsInSlice(r.Status, PolicyStatuses) {
		errs.Add("status", "status must be one of: "+strings.Join(PolicyStatuses, ", "))
	}

	if utf8.RuneCountInString(r.Insurer) > 255 {
		errs.Add("insurer", "insurer must not exceed 255 characters")
	}

	return errs.Err()
}

func (r ListPoliciesRequest) ToFilter() Filter {
	var filter Filter
	if r.Company != "" && !strings.EqualFold(r.Company, "all") {
		c := r.Company
		filter.Company = &c
	}
	if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err == nil {
		filter.EmployeeID = &id
	}
	if r.Status != "" {
		s := PolicyStatus(r.Status)
		filter.Status = &s
	}
	if insurer := strings.TrimSpace(r.Insurer); insurer != "" {
		filter.Insurer = &insurer
	}
	return filter
}

type Filter struct {
	Company    *string
	EmployeeID *int64
	Status     *PolicyStatus
	Insurer    *string
}

type PolicyResponse struct {
	ID           int64           `json:"id"`
	EmployeeID   int64           `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	EmployeeCode string          `json:"employee_code"`
	Company      string          `json:"company"`
	Insurer      string          `json:"insurer"`
	PolicyNumber string          `json:"policy_number"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	StartDate    string          `json:"start_date"`
	EndDate      *string         `json:"end_date"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedBy    *int64          `json:"created_by,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func NewPolicyResponse(p Policy) PolicyResponse {
	resp := PolicyResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		EmployeeCode: p.EmployeeCode,
		Company:      p.Company,
		Insurer:      p.Insurer,
		PolicyNumber: p.PolicyNumber,
		Amount:       p.Amount,
		Status:       string(p.Status),
		StartDate:    p.StartDate.Format(validator.DateLayout),
		Notes:        p.Notes,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
	if p.EndDate != nil {
		end := p.EndDate.Format(validator.DateLayout)
		resp.EndDate = &end
	}
	return resp
}

type PaymentResponse struct {
	ID        int64           `json:"id"`
	PolicyID  int64           `json:"policy_id"`
	Month     string          `json:"month"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	CreatedBy *int64          `json:"created_by,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		PolicyID:  p.PolicyID,
		Month:     p.Month,
		Amount:    p.Amount,
		Method:    string(p.Method),
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
