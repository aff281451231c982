package recurring

import (
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
)

const FormName = "recurring-deduction"

func FormSchema() schema.Schema {
	return schema.Schema{
		Form:  FormName,
		Title: "Recurring Deduction",
		Fields: []schema.Field{
			payroll.EmployeeField(),
			{Name: "name", Label: "Deduction name", Type: schema.TypeText, Required: true, MaxLength: 255},
			payroll.AmountField("Amount", true),
			{Name: "start_date", Label: "Start date", Type: schema.TypeDate, DefaultToday: true},
			{Name: "end_date", Label: "End date", Type: schema.TypeDate},
			{Name: "frequency", Label: "Frequency", Type: schema.TypeEnum, Required: true, Options: Frequencies},
			payroll.StatusField(),
			payroll.ApprovedField(),
			payroll.DocumentImageField(),
			payroll.NotesField("notes", "Notes"),
		},
		Spans: []schema.Span{{Start: "start_date", End: "end_date"}},
	}
}

// Parse validates a create submission.
func Parse(raw map[string]any, now time.Time) (Deduction, error) {
	values, err := FormSchema().Validate(raw, now)
	if err != nil {
		return Deduction{}, err
	}

	var approved *bool
	if schema.Supplied(raw, "approved") {
		approved = values.Bool("approved")
	}
	status, err := payroll.ResolveStatus(payroll.Status(*values.String("status")), schema.Supplied(raw, "status"), approved)
	if err != nil {
		return Deduction{}, err
	}
	values["status"] = string(status)

	return fromValues(values), nil
}

// ApplyPatch merges the supplied fields of raw onto existing.
func ApplyPatch(existing Deduction, raw map[string]any) (Deduction, error) {
	merged, patch, err := FormSchema().Patch(toValues(existing), raw)
	if err != nil {
		return Deduction{}, err
	}

	var approved *bool
	if patch.Has("approved") {
		approved = patch.Bool("approved")
	}
	status, err := payroll.ResolveStatus(payroll.Status(*merged.String("status")), patch.Has("status"), approved)
	if err != nil {
		return Deduction{}, err
	}
	merged["status"] = string(status)

	updated := fromValues(merged)
	updated.ID = existing.ID
	updated.ReferenceNumber = existing.ReferenceNumber
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = existing.UpdatedAt
	updated.EmployeeName = existing.EmployeeName
	updated.EmployeeCode = existing.EmployeeCode
	updated.Company = existing.Company
	return updated, nil
}

func toValues(d Deduction) schema.Values {
	v := schema.Values{
		"employee_id": d.EmployeeID,
		"name":        d.Name,
		"amount":      d.Amount,
		"start_date":  d.StartDate,
		"frequency":   string(d.Frequency),
		"status":      string(d.Status),
		"approved":    d.Approved(),
	}
	v.Set("end_date", d.EndDate)
	v.Set("document_image", d.DocumentImage)
	v.Set("notes", d.Notes)
	return v
}

func fromValues(v schema.Values) Deduction {
	d := Deduction{
		EndDate:       v.Date("end_date"),
		DocumentImage: v.String("document_image"),
		Notes:         v.String("notes"),
	}
	if id := v.Int("employee_id"); id != nil {
		d.EmployeeID = *id
	}
	if name := v.String("name"); name != nil {
		d.Name = *name
	}
	if amount := v.Decimal("amount"); amount != nil {
		d.Amount = *amount
	}
	if start := v.Date("start_date"); start != nil {
		d.StartDate = *start
	}
	if f := v.String("frequency"); f != nil {
		d.Frequency = Frequency(*f)
	}
	if s := v.String("status"); s != nil {
		d.Status = payroll.Status(*s)
	}
	return d
}
