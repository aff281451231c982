package employee

import (
	"testing"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := CreateEmployeeRequest{
		EmployeeCode: " but0042 ",
		FullName:     "Sipho Dlamini",
		Company:      "Butters",
		BankName:     strPtr("fnb"),
		JoinDate:     strPtr("2023-02-01"),
	}

	require.NoError(t, req.Validate())
	assert.Equal(t, "BUT0042", req.EmployeeCode)
}

func TestCreateEmployeeRequest_ValidateErrors(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	req := CreateEmployeeRequest{
		EmployeeCode:  "42",
		Company:       "Acme",
		Status:        strPtr("Retired"),
		JoinDate:      strPtr("01/02/2023"),
		BankName:      strPtr("Bank of Nowhere"),
		AccountNumber: strPtr("12"),
		BaseSalary:    &negative,
	}

	err := req.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := verrs.ToMap()
	for _, field := range []string{"employee_code", "full_name", "company", "status", "join_date", "bank_name", "account_number", "base_salary"} {
		assert.Contains(t, fields, field)
	}
}

func TestCreateEmployeeRequest_BaseSalaryFitsColumn(t *testing.T) {
	tests := []struct {
		salary string
		want   string
	}{
		{"1000000000000", "base_salary must be at most 999999999999.99"},
		{"15000.255", "base_salary must have at most 2 decimal places"},
		{"999999999999.99", ""},
		{"15000.250", ""},
	}

	for _, tt := range tests {
		t.Run(tt.salary, func(t *testing.T) {
			salary := decimal.RequireFromString(tt.salary)
			req := CreateEmployeeRequest{EmployeeCode: "BUT0042", FullName: "Sipho Dlamini", Company: "Butters", BaseSalary: &salary}

			err := req.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.want, verrs.ToMap()["base_salary"])
		})
	}
}

func TestListEmployeesRequest_ToFilter(t *testing.T) {
	req := ListEmployeesRequest{Company: "all", Status: "On Leave", Search: "  sipho "}
	require.NoError(t, req.Validate())

	filter := req.ToFilter()
	assert.Nil(t, filter.Company)
	require.NotNil(t, filter.Status)
	assert.Equal(t, StatusOnLeave, *filter.Status)
	assert.Equal(t, "sipho", *filter.Search)
	assert.Nil(t, filter.Department)

	req = ListEmployeesRequest{Company: "Makana"}
	filter = req.ToFilter()
	require.NotNil(t, filter.Company)
	assert.Equal(t, CompanyMakana, *filter.Company)
}

func TestCanonicalBank(t *testing.T) {
	bank, ok := CanonicalBank("standard bank")
	assert.True(t, ok)
	assert.Equal(t, "Standard Bank", bank)

	_, ok = CanonicalBank("Monopoly Bank")
	assert.False(t, ok)
}
