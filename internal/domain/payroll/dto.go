package payroll

import (
	"strconv"
	"strings"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ListRecordsRequest carries the raw list query parameters.
type ListRecordsRequest struct {
	Company    string
	StartDate  string
	EndDate    string
	RecordType string
	EmployeeID string
	Status     string
}

func (r *ListRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Company != "" && !strings.EqualFold(r.Company, "all") && !validator.IsInSlice(r.Company, []string{"Butters", "Makana"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "company",
			Message: "company must be one of: all, Butters, Makana",
		})
	}

	var start, end time.Time
	if r.StartDate != "" {
		var ok bool
		if start, ok = validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if r.EndDate != "" {
		var ok bool
		if end, ok = validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be on or after start_date",
		})
	}

	for _, name := range splitList(r.RecordType) {
		if _, ok := ParseKind(name); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "record_type",
				Message: "unknown record_type: " + name,
			})
		}
	}

	if r.EmployeeID != "" {
		if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err != nil || id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must be a positive integer",
			})
		}
	}

	if r.Status != "" && !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToFilter converts a validated request into a repository filter.
func (r ListRecordsRequest) ToFilter() RecordFilter {
	var filter RecordFilter
	if r.Company != "" && !strings.EqualFold(r.Company, "all") {
		c := r.Company
		filter.Company = &c
	}
	if d, ok := validator.IsValidDate(r.StartDate); ok {
		filter.StartDate = &d
	}
	if d, ok := validator.IsValidDate(r.EndDate); ok {
		filter.EndDate = &d
	}
	for _, name := range splitList(r.RecordType) {
		if k, ok := ParseKind(name); ok {
			filter.Kinds = append(filter.Kinds, k)
		}
	}
	if id, err := strconv.ParseInt(r.EmployeeID, 10, 64); err == nil {
		filter.EmployeeID = &id
	}
	if r.Status != "" {
		s := Status(r.Status)
		filter.Status = &s
	}
	return filter
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RecordFilter selects records; date bounds are inclusive and apply to the
// record date.
type RecordFilter struct {
	Company    *string
	StartDate  *time.Time
	EndDate    *time.Time
	Kinds      []Kind
	EmployeeID *int64
	Status     *Status
}

// RecordResponse is the flat wire shape of a record of any kind.
type RecordResponse struct {
	ID            int64            `json:"id"`
	EmployeeID    int64            `json:"employee_id"`
	EmployeeName  string           `json:"employee_name"`
	EmployeeCode  string           `json:"employee_code"`
	Company       string           `json:"company"`
	RecordType    string           `json:"record_type"`
	Date          string           `json:"date"`
	Status        string           `json:"status"`
	Approved      bool             `json:"approved"`
	Details       *string          `json:"details,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	DocumentImage *string          `json:"document_image,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Hours         *decimal.Decimal `json:"hours,omitempty"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	Recurring     *bool            `json:"recurring,omitempty"`
	StartDate     *string          `json:"start_date,omitempty"`
	EndDate       *string          `json:"end_date,omitempty"`
	TotalDays     *int64           `json:"total_days,omitempty"`
	LeaveType     *string          `json:"leave_type,omitempty"`
	DeductionType *string          `json:"deduction_type,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	BranchCode    *string          `json:"branch_code,omitempty"`
	AccountType   *string          `json:"account_type,omitempty"`
	Reason        *string          `json:"reason,omitempty"`
	CreatedBy     *int64           `json:"created_by,omitempty"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	c := Flatten(r.Payload)
	resp := RecordResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		EmployeeCode:  r.EmployeeCode,
		Company:       r.Company,
		RecordType:    string(r.Kind),
		Date:          r.Date.Format(validator.DateLayout),
		Status:        string(r.Status),
		Approved:      r.Approved(),
		Details:       r.Details,
		Description:   r.Description,
		Notes:         r.Notes,
		DocumentImage: r.DocumentImage,
		Amount:        c.Amount,
		Hours:         c.Hours,
		Rate:          c.Rate,
		StartDate:     formatDate(c.StartDate),
		EndDate:       formatDate(c.EndDate),
		TotalDays:     c.TotalDays,
		LeaveType:     c.LeaveType,
		DeductionType: c.DeductionType,
		BankName:      c.BankName,
		AccountNumber: c.AccountNumber,
		BranchCode:    c.BranchCode,
		AccountType:   c.AccountType,
		Reason:        c.Reason,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if r.Kind.Family() == FamilyMonetary {
		recurring := c.Recurring
		resp.Recurring = &recurring
	}
	return resp
}

func NewRecordResponses(records []Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordResponse(r))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.DateLayout)
	return &s
}

// ArchiveRequest names the record types whose active rows move to the archive.
type ArchiveRequest struct {
	RecordTypes []string `json:"record_types"`
}

func (r *ArchiveRequest) Validate() error {
	if len(splitList(strings.Join(r.RecordTypes, ","))) == 0 {
		return ErrNoKindsSelected
	}

	var errs validator.ValidationErrors
	for _, name := range r.RecordTypes {
		if _, ok := ParseKind(name); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "record_types",
				Message: "unknown record_type: " + name,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Kinds returns the selected kinds without duplicates.
func (r ArchiveRequest) Kinds() []Kind {
	seen := make(map[Kind]bool)
	var kinds []Kind
	for _, name := range r.RecordTypes {
		k, ok := ParseKind(name)
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds
}

type ArchiveResponse struct {
	Archived    int64    `json:"archived"`
	RecordTypes []string `json:"record_types"`
}
