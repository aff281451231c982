package postgresql_test

import (
	"context"
	"testing"

	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepository_Headcount(t *testing.T) {
	db := testDatabase(t)
	createTestEmployee(t, db, "BUT0001", "Sizwe Ndlovu", employee.CompanyButters)
	createTestEmployee(t, db, "BUT0002", "Palesa Mahlangu", employee.CompanyButters)
	createTestEmployee(t, db, "MAK0001", "Lindiwe Dube", employee.CompanyMakana)

	repo := postgresql.NewDashboardRepository(db)
	rows, err := repo.GetHeadcount(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Butters", rows[0].Company)
	assert.Equal(t, int64(2), rows[0].Count)

	stats, err := repo.GetCoverStats(context.Background(), day("2025-05-01"))
	require.NoError(t, err)
	assert.Zero(t, stats.ActivePolicies)
}
