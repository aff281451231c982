package insurance

import (
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
)

const (
	PolicyFormName  = "insurance-policy"
	PaymentFormName = "policy-payment"
)

func PolicySchema() schema.Schema {
	return schema.Schema{
		Form:  PolicyFormName,
		Title: "Insurance Policy",
		Fields: []schema.Field{
			payroll.EmployeeField(),
			{Name: "insurer", Label: "Insurer", Type: schema.TypeText, Required: true, MaxLength: 255},
			{Name: "policy_number", Label: "Policy number", Type: schema.TypeText, Required: true, MaxLength: 100},
			payroll.AmountField("Monthly premium", true),
			{Name: "status", Label: "Status", Type: schema.TypeEnum, Options: PolicyStatuses, Default: string(PolicyPending)},
			{Name: "start_date", Label: "Start date", Type: schema.TypeDate, DefaultToday: true},
			{Name: "end_date", Label: "End date", Type: schema.TypeDate},
			payroll.NotesField("notes", "Notes"),
		},
		Spans: []schema.Span{{Start: "start_date", End: "end_date"}},
	}
}

func PaymentSchema() schema.Schema {
	return schema.Schema{
		Form:  PaymentFormName,
		Title: "Policy Payment",
		Fields: []schema.Field{
			{Name: "month", Label: "Month", Type: schema.TypeMonth, Required: true},
			payroll.AmountField("Amount", true),
			{Name: "method", Label: "Payment method", Type: schema.TypeEnum, Required: true, Options: PaymentMethods},
		},
	}
}

// Schemas returns the insurance forms in display order.
func Schemas() []schema.Schema {
	return []schema.Schema{PolicySchema(), PaymentSchema()}
}

// ParsePolicy validates a policy submission.
func ParsePolicy(raw map[string]any, now time.Time) (Policy, error) {
	values, err := PolicySchema().Validate(raw, now)
	if err != nil {
		return Policy{}, err
	}
	return policyFromValues(values), nil
}

// ApplyPolicyPatch merges the supplied fields of raw onto existing.
func ApplyPolicyPatch(existing Policy, raw map[string]any) (Policy, error) {
	merged, _, err := PolicySchema().Patch(policyValues(existing), raw)
	if err != nil {
		return Policy{}, err
	}

	updated := policyFromValues(merged)
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = existing.UpdatedAt
	updated.EmployeeName = existing.EmployeeName
	updated.EmployeeCode = existing.EmployeeCode
	updated.Company = existing.Company
	return updated, nil
}

// ParsePayment validates a payment submission for the given policy.
func ParsePayment(policyID int64, raw map[string]any, now time.Time) (Payment, error) {
	values, err := PaymentSchema().Validate(raw, now)
	if err != nil {
		return Payment{}, err
	}
	return Payment{
		PolicyID: policyID,
		Month:    *values.String("month"),
		Amount:   *values.Decimal("amount"),
		Method:   PaymentMethod(*values.String("method")),
	}, nil
}

func policyValues(p Policy) schema.Values {
	v := schema.Values{
		"employee_id":   p.EmployeeID,
		"insurer":       p.Insurer,
		"policy_number": p.PolicyNumber,
		"amount":        p.Amount,
		"status":        string(p.Status),
		"start_date":    p.StartDate,
	}
	v.Set("end_date", p.EndDate)
	v.Set("notes", p.Notes)
	return v
}

func policyFromValues(v schema.Values) Policy {
	p := Policy{
		EndDate: v.Date("end_date"),
		Notes:   v.String("notes"),
	}
	if id := v.Int("employee_id"); id != nil {
		p.EmployeeID = *id
	}
	if s := v.String("insurer"); s != nil {
		p.Insurer = *s
	}
	if s := v.String("policy_number"); s != nil {
		p.PolicyNumber = *s
	}
	if amount := v.Decimal("amount"); amount != nil {
		p.Amount = *amount
	}
	if s := v.String("status"); s != nil {
		p.Status = PolicyStatus(*s)
	}
	if start := v.Date("start_date"); start != nil {
		p.StartDate = *start
	}
	return p
}
