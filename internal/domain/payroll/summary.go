package payroll

import (
	"github.com/shopspring/decimal"
)

// Totals aggregates a group of records.
type Totals struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Hours  decimal.Decimal `json:"hours"`
}

func (t *Totals) add(r Record) {
	t.Count++
	t.Amount = t.Amount.Add(r.Amount())
	t.Hours = t.Hours.Add(r.Hours())
}

type Summary struct {
	Butters        Totals            `json:"butters"`
	Makana         Totals            `json:"makana"`
	Total          Totals            `json:"total"`
	ByKind         map[string]Totals `json:"by_kind"`
	RecurringCount int64             `json:"recurring_count"`
	ApprovedCount  int64             `json:"approved_count"`
	PendingCount   int64             `json:"pending_count"`
	RejectedCount  int64             `json:"rejected_count"`
}

// Summarize reduces a filtered record list into per-company totals.
func Summarize(records []Record) Summary {
	s := Summary{
		Butters: Totals{Amount: decimal.Zero, Hours: decimal.Zero},
		Makana:  Totals{Amount: decimal.Zero, Hours: decimal.Zero},
		Total:   Totals{Amount: decimal.Zero, Hours: decimal.Zero},
		ByKind:  make(map[string]Totals),
	}

	for _, r := range records {
		switch r.Company {
		case "Butters":
			s.Butters.add(r)
		case "Makana":
			s.Makana.add(r)
		}
		s.Total.add(r)

		k := s.ByKind[string(r.Kind)]
		k.add(r)
		s.ByKind[string(r.Kind)] = k

		if r.Recurring() {
			s.RecurringCount++
		}
		switch r.Status {
		case StatusApproved:
			s.ApprovedCount++
		case StatusRejected:
			s.RejectedCount++
		default:
			s.PendingCount++
		}
	}

	return s
}
