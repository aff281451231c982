package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is one of the two business units employees are partitioned by.
type Company string

const (
	CompanyButters Company = "Butters"
	CompanyMakana  Company = "Makana"
)

var Companies = []Company{CompanyButters, CompanyMakana}

func (c Company) IsValid() bool {
	return c == CompanyButters || c == CompanyMakana
}

type Status string

const (
	StatusActive     Status = "Active"
	StatusOnLeave    Status = "On Leave"
	StatusTerminated Status = "Terminated"
)

var Statuses = []Status{StatusActive, StatusOnLeave, StatusTerminated}

type Employee struct {
	ID            int64
	EmployeeCode  string
	FullName      string
	Company       Company
	Department    *string
	Position      *string
	Status        Status
	JoinDate      *time.Time
	BankName      *string
	AccountNumber *string
	BranchCode    *string
	BaseSalary    *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTerminated checks if the employee has left the company
func (e *Employee) IsTerminated() bool {
	return e.Status == StatusTerminated
}
