package payroll

import (
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

// Parse validates a create submission for kind and builds the record,
// deriving total_days for span kinds when it was not supplied.
func Parse(kind Kind, raw map[string]any, now time.Time) (Record, error) {
	s := FormSchema(kind)

	values, err := s.Validate(raw, now)
	if err != nil {
		return Record{}, err
	}

	var approved *bool
	if schema.Supplied(raw, "approved") {
		approved = values.Bool("approved")
	}
	status, err := ResolveStatus(Status(deref(values.String("status"))), schema.Supplied(raw, "status"), approved)
	if err != nil {
		return Record{}, err
	}
	values["status"] = string(status)

	if kind.Family() == FamilySpan && values.Int("total_days") == nil {
		values["total_days"] = CountDays(*values.Date("start_date"), *values.Date("end_date"))
	}

	return recordFromValues(kind, values), nil
}

// ApplyPatch validates the supplied fields of raw and merges them onto
// existing. total_days is recomputed when a span date actually changed and
// the patch does not set total_days itself; a manual total_days is kept.
func ApplyPatch(existing Record, raw map[string]any) (Record, error) {
	s := FormSchema(existing.Kind)

	base := RecordValues(existing)
	merged, patch, err := s.Patch(base, raw)
	if err != nil {
		return Record{}, err
	}

	var approved *bool
	if patch.Has("approved") {
		approved = patch.Bool("approved")
	}
	status, err := ResolveStatus(Status(deref(merged.String("status"))), patch.Has("status"), approved)
	if err != nil {
		return Record{}, err
	}
	merged["status"] = string(status)

	if existing.Kind.Family() == FamilySpan && patch.Int("total_days") == nil {
		datesChanged := schema.Changed(base, patch, "start_date") || schema.Changed(base, patch, "end_date")
		if datesChanged || merged.Int("total_days") == nil {
			merged["total_days"] = CountDays(*merged.Date("start_date"), *merged.Date("end_date"))
		}
	}

	updated := recordFromValues(existing.Kind, merged)
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = existing.UpdatedAt
	updated.EmployeeName = existing.EmployeeName
	updated.EmployeeCode = existing.EmployeeCode
	updated.Company = existing.Company
	return updated, nil
}

// ResolveStatus folds the legacy approved flag into the three-state status.
// approved is nil when the caller did not send it. Approving sets Approved;
// un-approving an Approved record sends it back to Pending. A status sent in
// the same request that contradicts approved is rejected.
func ResolveStatus(status Status, statusSupplied bool, approved *bool) (Status, error) {
	if status == "" {
		status = StatusPending
	}
	if approved == nil {
		return status, nil
	}

	if *approved {
		if statusSupplied && status != StatusApproved {
			return "", validator.ValidationErrors{{Field: "approved", Message: "approved conflicts with status " + string(status)}}
		}
		return StatusApproved, nil
	}

	if status == StatusApproved {
		if statusSupplied {
			return "", validator.ValidationErrors{{Field: "approved", Message: "approved conflicts with status Approved"}}
		}
		return StatusPending, nil
	}
	return status, nil
}

// RecordValues expresses a stored record in form-field terms.
func RecordValues(r Record) schema.Values {
	v := schema.Values{
		"record_type": string(r.Kind),
		"employee_id": r.EmployeeID,
		"date":        r.Date,
		"status":      string(r.Status),
		"approved":    r.Approved(),
	}
	v.Set("details", r.Details)
	v.Set("description", r.Description)
	v.Set("notes", r.Notes)
	v.Set("document_image", r.DocumentImage)

	c := Flatten(r.Payload)
	v.Set("amount", c.Amount)
	v.Set("hours", c.Hours)
	v.Set("rate", c.Rate)
	v["recurring"] = c.Recurring
	v.Set("start_date", c.StartDate)
	v.Set("end_date", c.EndDate)
	v.Set("total_days", c.TotalDays)
	v.Set("leave_type", c.LeaveType)
	v.Set("deduction_type", c.DeductionType)
	v.Set("bank_name", c.BankName)
	v.Set("account_number", c.AccountNumber)
	v.Set("branch_code", c.BranchCode)
	v.Set("account_type", c.AccountType)
	v.Set("reason", c.Reason)
	return v
}

func recordFromValues(kind Kind, v schema.Values) Record {
	r := Record{
		Kind:          kind,
		EmployeeID:    derefInt(v.Int("employee_id")),
		Status:        Status(deref(v.String("status"))),
		Details:       v.String("details"),
		Description:   v.String("description"),
		Notes:         v.String("notes"),
		DocumentImage: v.String("document_image"),
	}
	if d := v.Date("date"); d != nil {
		r.Date = *d
	}

	c := Columns{
		Amount:        v.Decimal("amount"),
		Hours:         v.Decimal("hours"),
		Rate:          v.Decimal("rate"),
		StartDate:     v.Date("start_date"),
		EndDate:       v.Date("end_date"),
		TotalDays:     v.Int("total_days"),
		LeaveType:     v.String("leave_type"),
		DeductionType: v.String("deduction_type"),
		BankName:      v.String("bank_name"),
		AccountNumber: v.String("account_number"),
		BranchCode:    v.String("branch_code"),
		AccountType:   v.String("account_type"),
		Reason:        v.String("reason"),
	}
	if b := v.Bool("recurring"); b != nil {
		c.Recurring = *b
	}
	r.Payload = c.Payload(kind)
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
