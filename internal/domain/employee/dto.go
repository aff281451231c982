package employee

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Banks accepted for salary payments.
var Banks = []string{
	"ABSA", "African Bank", "Capitec", "Discovery Bank", "FNB",
	"Investec", "Nedbank", "Standard Bank", "TymeBank",
}

// MaxBaseSalary is the largest value the NUMERIC(14,2) base_salary column holds.
var MaxBaseSalary = decimal.RequireFromString("999999999999.99")

// CanonicalBank returns the listed spelling of bank, matched case-insensitively.
func CanonicalBank(bank string) (string, bool) {
	for _, b := range Banks {
		if strings.EqualFold(strings.TrimSpace(bank), b) {
			return b, true
		}
	}
	return "", false
}

func companyNames() []string {
	return []string{string(CompanyButters), string(CompanyMakana)}
}

func statusNames() []string {
	names := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		names = append(names, string(s))
	}
	return names
}

type CreateEmployeeRequest struct {
	EmployeeCode  string           `json:"employee_code"`
	FullName      string           `json:"full_name"`
	Company       string           `json:"company"`
	Department    *string          `json:"department,omitempty"`
	Position      *string          `json:"position,omitempty"`
	Status        *string          `json:"status,omitempty"`
	JoinDate      *string          `json:"join_date,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	BranchCode    *string          `json:"branch_code,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.ToUpper(strings.TrimSpace(r.EmployeeCode))
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be a letter prefix followed by digits, e.g. BUT0042",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if utf8.RuneCountInString(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Company) {
		errs = append(errs, validator.ValidationError{
			Field:   "company",
			Message: "company is required",
		})
	} else if !validator.IsInSlice(r.Company, companyNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "company",
			Message: "company must be one of: Butters, Makana",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, statusNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(statusNames(), ", "),
		})
	}

	errs = append(errs, validateEmploymentDetails(r.JoinDate, r.BankName, r.AccountNumber, r.BaseSalary)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID            int64            `json:"-"`
	FullName      *string          `json:"full_name,omitempty"`
	Company       *string          `json:"company,omitempty"`
	Department    *string          `json:"department,omitempty"`
	Position      *string          `json:"position,omitempty"`
	Status        *string          `json:"status,omitempty"`
	JoinDate      *string          `json:"join_date,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	BranchCode    *string          `json:"branch_code,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Company != nil && !validator.IsInSlice(*r.Company, companyNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "company",
			Message: "company must be one of: Butters, Makana",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, statusNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(statusNames(), ", "),
		})
	}

	errs = append(errs, validateEmploymentDetails(r.JoinDate, r.BankName, r.AccountNumber, r.BaseSalary)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateEmploymentDetails(joinDate, bankName, accountNumber *string, baseSalary *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if joinDate != nil && !validator.IsEmpty(*joinDate) {
		if _, ok := validator.IsValidDate(*joinDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if bankName != nil && !validator.IsEmpty(*bankName) {
		if _, ok := CanonicalBank(*bankName); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "bank_name",
				Message: "bank_name must be one of: " + strings.Join(Banks, ", "),
			})
		}
	}

	if accountNumber != nil && !validator.IsEmpty(*accountNumber) && !validator.IsValidAccountNumber(*accountNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "account_number",
			Message: "account_number must be 6 to 16 digits",
		})
	}

	if baseSalary != nil {
		switch {
		case baseSalary.IsNegative():
			errs = append(errs, validator.ValidationError{
				Field:   "base_salary",
				Message: "base_salary must be at least 0",
			})
		case baseSalary.GreaterThan(MaxBaseSalary):
			errs = append(errs, validator.ValidationError{
				Field:   "base_salary",
				Message: "base_salary must be at most " + MaxBaseSalary.String(),
			})
		case !baseSalary.Equal(baseSalary.Truncate(2)):
			errs = append(errs, validator.ValidationError{
				Field:   "base_salary",
				Message: "base_salary must have at most 2 decimal places",
			})
		}
	}

	return errs
}

type ListEmployeesRequest struct {
	Company    string
	Status     string
	Department string
	Search     string
}

func (r *ListEmployeesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Company != "" && !strings.EqualFold(r.Company, "all") && !validator.IsInSlice(r.Company, companyNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "company",
			Message: "company must be one of: all, Butters, Makana",
		})
	}

	if r.Status != "" && !validator.IsInSlice(r.Status, statusNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(statusNames(), ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r ListEmployeesRequest) ToFilter() EmployeeFilter {
	var filter EmployeeFilter
	if r.Company != "" && !strings.EqualFold(r.Company, "all") {
		c := Company(r.Company)
		filter.Company = &c
	}
	if r.Status != "" {
		s := Status(r.Status)
		filter.Status = &s
	}
	if d := strings.TrimSpace(r.Department); d != "" {
		filter.Department = &d
	}
	if s := strings.TrimSpace(r.Search); s != "" {
		filter.Search = &s
	}
	return filter
}

type EmployeeFilter struct {
	Company    *Company
	Status     *Status
	Department *string
	Search     *string
}

type EmployeeResponse struct {
	ID            int64            `json:"id"`
	EmployeeCode  string           `json:"employee_code"`
	FullName      string           `json:"full_name"`
	Company       string           `json:"company"`
	Department    *string          `json:"department,omitempty"`
	Position      *string          `json:"position,omitempty"`
	Status        string           `json:"status"`
	JoinDate      *string          `json:"join_date,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	BranchCode    *string          `json:"branch_code,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		EmployeeCode:  e.EmployeeCode,
		FullName:      e.FullName,
		Company:       string(e.Company),
		Department:    e.Department,
		Position:      e.Position,
		Status:        string(e.Status),
		BankName:      e.BankName,
		AccountNumber: e.AccountNumber,
		BranchCode:    e.BranchCode,
		BaseSalary:    e.BaseSalary,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
	if e.JoinDate != nil {
		d := e.JoinDate.Format(validator.DateLayout)
		resp.JoinDate = &d
	}
	return resp
}
