package maternity

import (
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
)

const FormName = "maternity-record"

func FormSchema() schema.Schema {
	return schema.Schema{
		Form:  FormName,
		Title: "Maternity Record",
		Fields: []schema.Field{
			payroll.EmployeeField(),
			{Name: "from_date", Label: "From", Type: schema.TypeDate, Required: true},
			{Name: "to_date", Label: "To", Type: schema.TypeDate, Required: true},
			payroll.NotesField("comments", "Comments"),
		},
		Spans: []schema.Span{{Start: "from_date", End: "to_date"}},
	}
}

func Parse(raw map[string]any, now time.Time) (Record, error) {
	values, err := FormSchema().Validate(raw, now)
	if err != nil {
		return Record{}, err
	}
	return fromValues(values), nil
}

func ApplyPatch(existing Record, raw map[string]any) (Record, error) {
	merged, _, err := FormSchema().Patch(toValues(existing), raw)
	if err != nil {
		return Record{}, err
	}

	updated := fromValues(merged)
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = existing.UpdatedAt
	updated.EmployeeName = existing.EmployeeName
	updated.EmployeeCode = existing.EmployeeCode
	updated.Company = existing.Company
	return updated, nil
}

func toValues(r Record) schema.Values {
	v := schema.Values{
		"employee_id": r.EmployeeID,
		"from_date":   r.FromDate,
		"to_date":     r.ToDate,
	}
	v.Set("comments", r.Comments)
	return v
}

func fromValues(v schema.Values) Record {
	r := Record{Comments: v.String("comments")}
	if id := v.Int("employee_id"); id != nil {
		r.EmployeeID = *id
	}
	if from := v.Date("from_date"); from != nil {
		r.FromDate = *from
	}
	if to := v.Date("to_date"); to != nil {
		r.ToDate = *to
	}
	return r
}
