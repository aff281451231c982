package maternity

import (
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
)

// Record tracks a maternity absence. It carries no status or approval.
type Record struct {
	ID         int64
	EmployeeID int64
	FromDate   time.Time
	ToDate     time.Time
	Comments   *string
	CreatedBy  *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName string
	EmployeeCode string
	Company      string
}

// TotalDays is the inclusive number of calendar days covered.
func (r Record) TotalDays() int64 {
	return payroll.CountDays(r.FromDate, r.ToDate)
}

// Overlaps reports whether the record covers any day in [from, to].
func (r Record) Overlaps(from, to time.Time) bool {
	return !r.ToDate.Before(from) && !r.FromDate.After(to)
}
