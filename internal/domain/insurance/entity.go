package insurance

import (
	"time"

	"github.com/shopspring/decimal"
)

type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "Active"
	PolicyCancelled PolicyStatus = "Cancelled"
	PolicyPending   PolicyStatus = "Pending"
	PolicySuspended PolicyStatus = "Suspended"
)

var PolicyStatuses = []string{
	string(PolicyActive), string(PolicyCancelled), string(PolicyPending), string(PolicySuspended),
}

type PaymentMethod string

const (
	MethodDebitOrder      PaymentMethod = "Debit Order"
	MethodEFT             PaymentMethod = "EFT"
	MethodCash            PaymentMethod = "Cash"
	MethodSalaryDeduction PaymentMethod = "Salary Deduction"
)

var PaymentMethods = []string{
	string(MethodDebitOrder), string(MethodEFT), string(MethodCash), string(MethodSalaryDeduction),
}

// Policy is an insurance cover held by an employee with an external insurer.
type Policy struct {
	ID           int64
	EmployeeID   int64
	Insurer      string
	PolicyNumber string
	Amount       decimal.Decimal
	Status       PolicyStatus
	StartDate    time.Time
	EndDate      *time.Time
	Notes        *string
	CreatedBy    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName string
	EmployeeCode string
	Company      string
}

// Payment is one monthly premium paid against a policy.
type Payment struct {
	ID        int64
	PolicyID  int64
	Month     string // YYYY-MM
	Amount    decimal.Decimal
	Method    PaymentMethod
	CreatedBy *int64
	CreatedAt time.Time
}
