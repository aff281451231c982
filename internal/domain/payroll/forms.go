package payroll

import (
	"math"

	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
)

var (
	LeaveTypes         = []string{"Annual", "Sick", "Family Responsibility", "Compassionate", "Study", "Unpaid"}
	DeductionTypes     = []string{"Uniform", "Damages", "Shortage", "Fine", "Medical", "Other"}
	AccountTypes       = []string{"Cheque", "Savings", "Transmission"}
	TerminationReasons = []string{"Resignation", "Dismissal", "Retrenchment", "Contract Expiry", "Absconded", "Deceased"}
	OvertimeRates      = []string{"1", "1.5", "2"}
)

// Upper bounds of the stored columns: money is NUMERIC(14,2), hours is
// NUMERIC(8,2) and day counts are INTEGER.
const (
	MaxAmount    = 999_999_999_999.99
	MaxHours     = 744
	MaxTotalDays = math.MaxInt32
	MoneyScale   = 2
)

// Field sets shared by several forms.

func EmployeeField() schema.Field {
	return schema.Field{Name: "employee_id", Label: "Employee", Type: schema.TypeInteger, Required: true, Min: schema.Float(1)}
}

func StatusField() schema.Field {
	return schema.Field{Name: "status", Label: "Status", Type: schema.TypeEnum, Options: Statuses, Default: string(StatusPending)}
}

func ApprovedField() schema.Field {
	return schema.Field{Name: "approved", Label: "Approved", Type: schema.TypeBool, Default: false}
}

func NotesField(name, label string) schema.Field {
	return schema.Field{Name: name, Label: label, Type: schema.TypeText, MaxLength: 2000}
}

func DocumentImageField() schema.Field {
	return schema.Field{Name: "document_image", Label: "Supporting document", Type: schema.TypeText, MaxLength: 500}
}

// AmountField is a non-negative money amount with cents precision.
func AmountField(label string, required bool) schema.Field {
	return schema.Field{
		Name: "amount", Label: label, Type: schema.TypeNumber, Required: required,
		Min: schema.Float(0), Max: schema.Float(MaxAmount), Scale: MoneyScale,
	}
}

func envelope(kind Kind) []schema.Field {
	return []schema.Field{
		{Name: "record_type", Label: "Record type", Type: schema.TypeEnum, Options: []string{string(kind)}, Default: string(kind), Locked: true},
		EmployeeField(),
		{Name: "date", Label: "Date", Type: schema.TypeDate, DefaultToday: true},
		StatusField(),
	}
}

func trailer() []schema.Field {
	return []schema.Field{
		NotesField("details", "Details"),
		NotesField("description", "Description"),
		NotesField("notes", "Notes"),
		DocumentImageField(),
	}
}

func kindFields(kind Kind) ([]schema.Field, []schema.Span) {
	switch kind.Family() {
	case FamilySpan:
		fields := []schema.Field{
			{Name: "start_date", Label: "Start date", Type: schema.TypeDate, Required: true},
			{Name: "end_date", Label: "End date", Type: schema.TypeDate, Required: true},
			{Name: "total_days", Label: "Total days", Type: schema.TypeInteger, Min: schema.Float(0), Max: schema.Float(MaxTotalDays), Derived: true},
		}
		if kind == KindLeave {
			fields = append([]schema.Field{
				{Name: "leave_type", Label: "Leave type", Type: schema.TypeEnum, Required: true, Options: LeaveTypes},
			}, fields...)
		}
		return fields, []schema.Span{{Start: "start_date", End: "end_date"}}

	case FamilyTime:
		fields := []schema.Field{
			{Name: "hours", Label: "Hours", Type: schema.TypeNumber, Required: true, Min: schema.Float(0), Max: schema.Float(MaxHours), Scale: MoneyScale},
		}
		if kind == KindOvertime {
			fields = append(fields,
				schema.Field{Name: "rate", Label: "Rate", Type: schema.TypeNumber, Required: true, Options: OvertimeRates},
				ApprovedField(),
			)
		}
		fields = append(fields, AmountField("Amount", false))
		return fields, nil

	case FamilyBankChange:
		return []schema.Field{
			{Name: "bank_name", Label: "Bank", Type: schema.TypeEnum, Required: true, Options: employee.Banks},
			{Name: "account_number", Label: "Account number", Type: schema.TypeText, Required: true, Pattern: `^[0-9 ]{6,20}$`, MaxLength: 20},
			{Name: "branch_code", Label: "Branch code", Type: schema.TypeText, Pattern: `^[0-9]{4,10}$`, MaxLength: 10},
			{Name: "account_type", Label: "Account type", Type: schema.TypeEnum, Options: AccountTypes},
			ApprovedField(),
		}, nil

	case FamilyTermination:
		return []schema.Field{
			{Name: "reason", Label: "Reason", Type: schema.TypeEnum, Required: true, Options: TerminationReasons},
			{Name: "end_date", Label: "Last working day", Type: schema.TypeDate},
			AmountField("Final settlement", false),
		}, nil

	default:
		fields := []schema.Field{
			AmountField("Amount", true),
			{Name: "recurring", Label: "Recurring", Type: schema.TypeBool, Default: false},
		}
		if kind == KindDeduction {
			fields = append(fields, schema.Field{Name: "deduction_type", Label: "Deduction type", Type: schema.TypeEnum, Options: DeductionTypes})
		}
		return fields, nil
	}
}

// FormSchema returns the form definition for kind.
func FormSchema(kind Kind) schema.Schema {
	specific, spans := kindFields(kind)

	fields := envelope(kind)
	fields = append(fields, specific...)
	fields = append(fields, trailer()...)

	return schema.Schema{
		Form:   kind.Slug(),
		Title:  string(kind),
		Fields: fields,
		Spans:  spans,
	}
}

// Schemas returns the form definition of every record kind.
func Schemas() []schema.Schema {
	out := make([]schema.Schema, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, FormSchema(k))
	}
	return out
}
