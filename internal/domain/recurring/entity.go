package recurring

import (
	"fmt"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

var Frequencies = []string{
	string(FrequencyWeekly), string(FrequencyBiweekly), string(FrequencyMonthly), string(FrequencyQuarterly),
}

// Deduction is an amount taken from an employee's pay on a repeating schedule.
// A nil EndDate means it runs indefinitely.
type Deduction struct {
	ID              int64
	EmployeeID      int64
	Name            string
	Amount          decimal.Decimal
	StartDate       time.Time
	EndDate         *time.Time
	Frequency       Frequency
	Status          payroll.Status
	ReferenceNumber *string
	DocumentImage   *string
	Notes           *string
	CreatedBy       *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName string
	EmployeeCode string
	Company      string
}

func (d Deduction) Approved() bool {
	return d.Status == payroll.StatusApproved
}

// ActiveOn reports whether the deduction applies on the given day.
func (d Deduction) ActiveOn(day time.Time) bool {
	if day.Before(d.StartDate) {
		return false
	}
	return d.EndDate == nil || !day.After(*d.EndDate)
}

// ReferenceNumber formats the reference shown to users for a stored deduction.
func ReferenceNumber(id int64) string {
	return fmt.Sprintf("RD-%06d", id)
}
