package payroll

import "strings"

// Kind is the record_type discriminator of a payroll record.
type Kind string

const (
	KindLeave             Kind = "Leave"
	KindTermination       Kind = "Termination"
	KindAdvance           Kind = "Advance"
	KindLoan              Kind = "Loan"
	KindDeduction         Kind = "Deduction"
	KindOvertime          Kind = "Overtime"
	KindStandbyShift      Kind = "Standby Shift"
	KindBankAccountChange Kind = "Bank Account Change"
	KindSpecialShift      Kind = "Special Shift"
	KindEscortAllowance   Kind = "Escort Allowance"
	KindCommission        Kind = "Commission"
	KindCashInTransit     Kind = "Cash In Transit"
	KindCameraAllowance   Kind = "Camera Allowance"
	KindStaffGarnishee    Kind = "Staff Garnishee"
	KindMaternityLeave    Kind = "Maternity Leave"
)

// Kinds lists every record kind in menu order.
var Kinds = []Kind{
	KindLeave, KindTermination, KindAdvance, KindLoan, KindDeduction,
	KindOvertime, KindStandbyShift, KindBankAccountChange, KindSpecialShift,
	KindEscortAllowance, KindCommission, KindCashInTransit, KindCameraAllowance,
	KindStaffGarnishee, KindMaternityLeave,
}

// Family groups kinds that share a payload shape.
type Family int

const (
	FamilyMonetary Family = iota
	FamilySpan
	FamilyTime
	FamilyBankChange
	FamilyTermination
)

func (k Kind) Family() Family {
	switch k {
	case KindLeave, KindMaternityLeave:
		return FamilySpan
	case KindOvertime, KindStandbyShift, KindSpecialShift:
		return FamilyTime
	case KindBankAccountChange:
		return FamilyBankChange
	case KindTermination:
		return FamilyTermination
	default:
		return FamilyMonetary
	}
}

// Slug is the URL form of the kind, e.g. "cash-in-transit".
func (k Kind) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(k)), " ", "-")
}

func (k Kind) IsValid() bool {
	_, ok := ParseKind(string(k))
	return ok
}

// ParseKind accepts a kind by name (any case) or by slug.
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, k.Slug()) {
			return k, true
		}
	}
	return "", false
}

// Status is the approval state shared by every status-bearing record.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
