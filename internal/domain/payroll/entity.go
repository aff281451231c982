package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one payroll transaction: a shared envelope plus a payload whose
// concrete type is fixed by Kind.
type Record struct {
	ID            int64
	EmployeeID    int64
	Kind          Kind
	Date          time.Time
	Status        Status
	Details       *string
	Description   *string
	Notes         *string
	DocumentImage *string
	Payload       Payload
	CreatedBy     *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName string
	EmployeeCode string
	Company      string
}

// Payload is implemented only by the payload types in this package.
type Payload interface {
	family() Family
}

// SpanPayload carries Leave and Maternity Leave.
type SpanPayload struct {
	StartDate time.Time
	EndDate   time.Time
	TotalDays int64
	LeaveType *string
}

// TimePayload carries Overtime, Standby Shift and Special Shift. Amount is
// captured independently; it is never derived from Hours and Rate.
type TimePayload struct {
	Hours  decimal.Decimal
	Rate   *decimal.Decimal
	Amount *decimal.Decimal
}

// MonetaryPayload carries advances, loans, deductions and allowances.
type MonetaryPayload struct {
	Amount        decimal.Decimal
	Recurring     bool
	DeductionType *string
}

type BankChangePayload struct {
	BankName      string
	AccountNumber string
	BranchCode    *string
	AccountType   *string
}

type TerminationPayload struct {
	Reason         string
	LastWorkingDay *time.Time
	Settlement     *decimal.Decimal
}

func (SpanPayload) family() Family        { return FamilySpan }
func (TimePayload) family() Family        { return FamilyTime }
func (MonetaryPayload) family() Family    { return FamilyMonetary }
func (BankChangePayload) family() Family  { return FamilyBankChange }
func (TerminationPayload) family() Family { return FamilyTermination }

// Amount is the monetary value of the record, zero when it carries none.
func (r Record) Amount() decimal.Decimal {
	switch p := r.Payload.(type) {
	case MonetaryPayload:
		return p.Amount
	case TimePayload:
		if p.Amount != nil {
			return *p.Amount
		}
	case TerminationPayload:
		if p.Settlement != nil {
			return *p.Settlement
		}
	}
	return decimal.Zero
}

func (r Record) Hours() decimal.Decimal {
	if p, ok := r.Payload.(TimePayload); ok {
		return p.Hours
	}
	return decimal.Zero
}

func (r Record) Recurring() bool {
	if p, ok := r.Payload.(MonetaryPayload); ok {
		return p.Recurring
	}
	return false
}

func (r Record) Approved() bool {
	return r.Status == StatusApproved
}

// Columns is the flattened storage shape shared by every kind.
type Columns struct {
	Amount        *decimal.Decimal
	Hours         *decimal.Decimal
	Rate          *decimal.Decimal
	Recurring     bool
	StartDate     *time.Time
	EndDate       *time.Time
	TotalDays     *int64
	LeaveType     *string
	DeductionType *string
	BankName      *string
	AccountNumber *string
	BranchCode    *string
	AccountType   *string
	Reason        *string
}

// Flatten maps a payload onto the shared nullable columns.
func Flatten(p Payload) Columns {
	var c Columns
	switch v := p.(type) {
	case SpanPayload:
		start, end, days := v.StartDate, v.EndDate, v.TotalDays
		c.StartDate, c.EndDate, c.TotalDays = &start, &end, &days
		c.LeaveType = v.LeaveType
	case TimePayload:
		hours := v.Hours
		c.Hours = &hours
		c.Rate = v.Rate
		c.Amount = v.Amount
	case MonetaryPayload:
		amount := v.Amount
		c.Amount = &amount
		c.Recurring = v.Recurring
		c.DeductionType = v.DeductionType
	case BankChangePayload:
		bank, account := v.BankName, v.AccountNumber
		c.BankName, c.AccountNumber = &bank, &account
		c.BranchCode = v.BranchCode
		c.AccountType = v.AccountType
	case TerminationPayload:
		reason := v.Reason
		c.Reason = &reason
		c.EndDate = v.LastWorkingDay
		c.Amount = v.Settlement
	}
	return c
}

// Payload rebuilds the kind's payload from stored columns. Missing required
// columns come back as zero values.
func (c Columns) Payload(kind Kind) Payload {
	switch kind.Family() {
	case FamilySpan:
		p := SpanPayload{LeaveType: c.LeaveType}
		if c.StartDate != nil {
			p.StartDate = *c.StartDate
		}
		if c.EndDate != nil {
			p.EndDate = *c.EndDate
		}
		if c.TotalDays != nil {
			p.TotalDays = *c.TotalDays
		}
		return p
	case FamilyTime:
		p := TimePayload{Rate: c.Rate, Amount: c.Amount}
		if c.Hours != nil {
			p.Hours = *c.Hours
		}
		return p
	case FamilyBankChange:
		p := BankChangePayload{BranchCode: c.BranchCode, AccountType: c.AccountType}
		if c.BankName != nil {
			p.BankName = *c.BankName
		}
		if c.AccountNumber != nil {
			p.AccountNumber = *c.AccountNumber
		}
		return p
	case FamilyTermination:
		p := TerminationPayload{LastWorkingDay: c.EndDate, Settlement: c.Amount}
		if c.Reason != nil {
			p.Reason = *c.Reason
		}
		return p
	default:
		p := MonetaryPayload{Recurring: c.Recurring, DeductionType: c.DeductionType}
		if c.Amount != nil {
			p.Amount = *c.Amount
		}
		return p
	}
}

const secondsPerDay = 24 * 60 * 60

// CountDays returns the inclusive number of calendar days from start to end.
func CountDays(start, end time.Time) int64 {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	// Unix seconds rather than Sub: a time.Duration saturates past ~292 years.
	return (e.Unix()-s.Unix())/secondsPerDay + 1
}
