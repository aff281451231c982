package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if _, ok := IsValidMonth("2025-05"); !ok {
		t.Error("IsValidMonth(2025-05) = false, want true")
	}
	for _, s := range []string{"2025-13", "2025-5-1", "May 2025", ""} {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestParseCalendarDate(t *testing.T) {
	want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2025-05-01", "2025-05-01T08:30:00Z", " 2025-05-01 "} {
		got, ok := ParseCalendarDate(s)
		if !ok || !got.Equal(want) {
			t.Errorf("ParseCalendarDate(%q) = %v, %v; want %v", s, got, ok, want)
		}
	}
	if _, ok := ParseCalendarDate("not-a-date"); ok {
		t.Error("ParseCalendarDate(not-a-date) = true, want false")
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"hr.admin", "payroll_01", "abc"}
	invalid := []string{"ab", "has space", "semi;colon", ""}
	for _, s := range valid {
		if !IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"BUT0042", "MAK-117", "SEC1"}
	invalid := []string{"0042", "B-", "TOOLONGPREFIX1", ""}
	for _, s := range valid {
		if !IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", s)
		}
	}
}

func TestIsValidAccountNumber(t *testing.T) {
	valid := []string{"123456", "1234 5678 9012", "1234567890123456"}
	invalid := []string{"12345", "12345678901234567", "12ab5678", ""}
	for _, s := range valid {
		if !IsValidAccountNumber(s) {
			t.Errorf("IsValidAccountNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidAccountNumber(s) {
			t.Errorf("IsValidAccountNumber(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatal("empty ValidationErrors.Err() should be nil")
	}

	errs.Add("amount", "amount is required")
	errs.Add("amount", "amount must be at least 0")
	errs.Add("date", "date must be a valid date (YYYY-MM-DD)")

	if errs.Err() == nil {
		t.Fatal("ValidationErrors.Err() should not be nil")
	}

	m := errs.ToMap()
	if m["amount"] != "amount is required" {
		t.Errorf("ToMap kept %q for amount, want the first message", m["amount"])
	}
	if len(m) != 2 {
		t.Errorf("ToMap has %d fields, want 2", len(m))
	}
	if errs.Error() != "amount: amount is required; amount: amount must be at least 0; date: date must be a valid date (YYYY-MM-DD)" {
		t.Errorf("unexpected Error() output: %s", errs.Error())
	}
}
