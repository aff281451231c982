package postgresql_test

import (
	"context"
	"testing"

	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := testDatabase(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, user.User{
		Username:     "Thandi",
		PasswordHash: "hash",
		FullName:     "Thandi Mokoena",
		Email:        strPtr("thandi@butters.co.za"),
		Role:         user.RolePayrollOfficer,
		Active:       true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Nil(t, created.LastLoginAt)

	found, err := repo.GetByUsername(ctx, "THANDI")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.Create(ctx, user.User{Username: "thandi", PasswordHash: "x", FullName: "Other", Role: user.RoleViewer, Active: true})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	require.NoError(t, repo.UpdateLastLogin(ctx, created.ID))
	found, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	db := testDatabase(t)

	_, err := postgresql.NewUserRepository(db).GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
