package payroll

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 20, 23, 45, 0, 0, time.UTC)

func date(s string) time.Time {
	d, _ := validator.ParseCalendarDate(s)
	return d
}

func TestCountDays(t *testing.T) {
	assert.Equal(t, int64(5), CountDays(date("2025-05-01"), date("2025-05-05")))
	assert.Equal(t, int64(1), CountDays(date("2025-05-01"), date("2025-05-01")))
	assert.Equal(t, int64(29), CountDays(date("2024-02-01"), date("2024-02-29")))

	// Clock time and zone do not shift the calendar count.
	start := time.Date(2025, 3, 29, 22, 0, 0, 0, time.FixedZone("SAST", 2*60*60))
	end := time.Date(2025, 3, 31, 1, 0, 0, 0, time.FixedZone("SAST", 2*60*60))
	assert.Equal(t, int64(3), CountDays(start, end))

	// Spans longer than a time.Duration can hold.
	assert.Equal(t, int64(118705), CountDays(date("1700-01-01"), date("2025-01-01")))
	assert.Equal(t, int64(3652059), CountDays(date("0001-01-01"), date("9999-12-31")))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("cash-in-transit")
	require.True(t, ok)
	assert.Equal(t, KindCashInTransit, k)

	k, ok = ParseKind("MATERNITY LEAVE")
	require.True(t, ok)
	assert.Equal(t, KindMaternityLeave, k)

	_, ok = ParseKind("Bonus")
	assert.False(t, ok)
}

func TestFormSchemasCoverEveryKind(t *testing.T) {
	schemas := Schemas()
	require.Len(t, schemas, len(Kinds))
	for i, s := range schemas {
		assert.Equal(t, Kinds[i].Slug(), s.Form)
		f, ok := s.Field("record_type")
		require.True(t, ok)
		assert.True(t, f.Locked)
	}
}

func TestParse_PayloadByFamily(t *testing.T) {
	r, err := Parse(KindMaternityLeave, map[string]any{
		"employee_id": 3,
		"start_date":  "2025-06-01",
		"end_date":    "2025-09-30",
	}, now)
	require.NoError(t, err)
	span, ok := r.Payload.(SpanPayload)
	require.True(t, ok)
	assert.Equal(t, int64(122), span.TotalDays)
	assert.Nil(t, span.LeaveType)
	assert.Equal(t, date("2025-05-20"), r.Date)

	r, err = Parse(KindDeduction, map[string]any{
		"employee_id":    3,
		"amount":         "75.25",
		"deduction_type": "uniform",
		"recurring":      "true",
	}, now)
	require.NoError(t, err)
	money, ok := r.Payload.(MonetaryPayload)
	require.True(t, ok)
	assert.True(t, money.Recurring)
	assert.Equal(t, "Uniform", *money.DeductionType)
	assert.Equal(t, "75.25", r.Amount().String())

	r, err = Parse(KindTermination, map[string]any{"employee_id": 3, "reason": "Retrenchment"}, now)
	require.NoError(t, err)
	term, ok := r.Payload.(TerminationPayload)
	require.True(t, ok)
	assert.Nil(t, term.LastWorkingDay)
	assert.True(t, r.Amount().IsZero())
}

func TestParse_SuppliedTotalDaysWins(t *testing.T) {
	r, err := Parse(KindLeave, map[string]any{
		"employee_id": 3,
		"leave_type":  "Study",
		"start_date":  "2025-05-01",
		"end_date":    "2025-05-05",
		"total_days":  3,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), r.Payload.(SpanPayload).TotalDays)
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse(KindOvertime, map[string]any{
		"employee_id": 0,
		"hours":       -1,
		"rate":        3,
		"amount":      "abc",
	}, now)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Equal(t, "employee_id must be at least 1", fields["employee_id"])
	assert.Equal(t, "hours must be at least 0", fields["hours"])
	assert.Contains(t, fields["rate"], "rate must be one of")
	assert.Equal(t, "amount must be a number", fields["amount"])
}

func TestParse_RejectsValuesTheColumnsCannotHold(t *testing.T) {
	_, err := Parse(KindAdvance, map[string]any{"employee_id": 3, "amount": json.Number("1e20")}, now)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "amount must be at most 999999999999.99", verrs.ToMap()["amount"])

	_, err = Parse(KindAdvance, map[string]any{"employee_id": 3, "amount": "10.005"}, now)
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "amount must have at most 2 decimal places", verrs.ToMap()["amount"])

	r, err := Parse(KindAdvance, map[string]any{"employee_id": 3, "amount": "10.500"}, now)
	require.NoError(t, err)
	assert.Equal(t, "10.5", r.Amount().String())

	_, err = Parse(KindLeave, map[string]any{
		"employee_id": 3,
		"leave_type":  "Annual",
		"start_date":  "2025-05-01",
		"end_date":    "2025-05-05",
		"total_days":  json.Number("99999999999"),
	}, now)
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "total_days must be at most 2147483647", verrs.ToMap()["total_days"])

	_, err = Parse(KindOvertime, map[string]any{"employee_id": 3, "hours": "2.125", "rate": "1.5"}, now)
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "hours")

	_, err = Parse(KindLoan, map[string]any{"employee_id": json.Number("1e30"), "amount": "5"}, now)
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "employee_id is out of range", verrs.ToMap()["employee_id"])
}

func TestApplyPatch_ClearsOptionalAndKeepsDefaults(t *testing.T) {
	r, err := Parse(KindLoan, map[string]any{
		"employee_id": 3,
		"amount":      "900",
		"notes":       "paid in two parts",
		"date":        "2025-05-02",
	}, now)
	require.NoError(t, err)
	r.ID = 11

	patched, err := ApplyPatch(r, map[string]any{"notes": nil, "date": nil, "status": ""})
	require.NoError(t, err)
	assert.Nil(t, patched.Notes)
	assert.Equal(t, date("2025-05-02"), patched.Date)
	assert.Equal(t, StatusPending, patched.Status)
	assert.Equal(t, int64(11), patched.ID)

	_, err = ApplyPatch(r, map[string]any{"amount": nil})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "amount must not be empty", verrs.ToMap()["amount"])
}

func TestResolveStatus(t *testing.T) {
	yes, no := true, false

	s, err := ResolveStatus("", false, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s)

	s, err = ResolveStatus(StatusRejected, false, &yes)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, s)

	s, err = ResolveStatus(StatusApproved, false, &no)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s)

	s, err = ResolveStatus(StatusRejected, true, &no)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, s)

	_, err = ResolveStatus(StatusApproved, true, &no)
	assert.Error(t, err)
}

func TestFlattenRoundTrip(t *testing.T) {
	r, err := Parse(KindBankAccountChange, map[string]any{
		"employee_id":    3,
		"bank_name":      "nedbank",
		"account_number": "1002 3004 5",
		"branch_code":    "198765",
		"account_type":   "Savings",
	}, now)
	require.NoError(t, err)

	rebuilt := Flatten(r.Payload).Payload(KindBankAccountChange)
	assert.Equal(t, r.Payload, rebuilt)
}
