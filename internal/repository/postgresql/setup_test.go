package postgresql_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// testDatabase connects to TEST_DATABASE_URL once, applies migrations and
// truncates every table. Tests skip when the variable is unset.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4})
		if testDBErr != nil {
			return
		}
		testDBErr = database.RunMigrations(testDB, slog.Default())
	})
	require.NoError(t, testDBErr)

	truncateAllTables(t, testDB)
	return testDB
}

func truncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()

	tables := []string{
		"activity_logs",
		"export_records",
		"maternity_records",
		"policy_payments",
		"insurance_policies",
		"recurring_deductions",
		"payroll_records_archive",
		"payroll_records",
		"employees",
		"refresh_tokens",
		"users",
	}

	ctx := context.Background()
	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}

func createTestEmployee(t *testing.T, db *database.DB, code, name string, company employee.Company) employee.Employee {
	t.Helper()

	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     name,
		Company:      company,
		Status:       employee.StatusActive,
	})
	require.NoError(t, err)
	return emp
}

func strPtr(s string) *string {
	return &s
}
