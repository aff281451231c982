package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/butters-makana/payroll-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(seed ...user.User) (*UserServiceImpl, *servicetest.UserRepo, *servicetest.ActivityRepo) {
	users := servicetest.NewUserRepo(seed...)
	activityRepo := &servicetest.ActivityRepo{}
	jwtService := jwt.NewJWTService(servicetest.Secret, "1h", "24h")
	svc := NewUserService(&servicetest.Transactor{}, users, activityRepo, servicetest.NewTokenStore(), jwtService).(*UserServiceImpl)
	svc.hashCost = bcrypt.MinCost
	return svc, users, activityRepo
}

func admin() user.User {
	return user.User{ID: 1, Username: "admin", FullName: "System Admin", Role: user.RoleAdmin, Active: true}
}

func TestCreate(t *testing.T) {
	svc, users, activityRepo := newTestService(admin())
	ctx := servicetest.ActorContext(t, 1, user.RoleAdmin)

	email := "sipho@butters.co.za"
	resp, err := svc.Create(ctx, user.CreateUserRequest{
		Username: "sipho",
		Password: "s3cure-pass",
		FullName: "Sipho Ndlovu",
		Email:    &email,
		Role:     "HR Manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "HR Manager", resp.Role)
	assert.True(t, resp.Active)
	assert.Equal(t, "sipho@butters.co.za", *resp.Email)

	stored, err := users.GetByUsername(context.Background(), "sipho")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cure-pass")))
	assert.Equal(t, []activity.Action{activity.ActionUserCreated}, activityRepo.Actions())

	_, err = svc.Create(ctx, user.CreateUserRequest{Username: "SIPHO", Password: "another-pass", FullName: "Dup", Role: "Viewer"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService(admin())
	ctx := servicetest.ActorContext(t, 1, user.RoleAdmin)

	_, err := svc.Create(ctx, user.CreateUserRequest{Username: "x", Password: "short", Role: "Owner"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "role")
}

func TestUpdate_GuardsSelf(t *testing.T) {
	svc, _, _ := newTestService(admin(), user.User{ID: 2, Username: "clerk", FullName: "Clerk", Role: user.RoleViewer, Active: true})
	ctx := servicetest.ActorContext(t, 1, user.RoleAdmin)

	viewer := "Viewer"
	_, err := svc.Update(ctx, user.UpdateUserRequest{ID: 1, Role: &viewer})
	assert.ErrorIs(t, err, user.ErrCannotDemoteSelf)

	inactive := false
	_, err = svc.Update(ctx, user.UpdateUserRequest{ID: 1, Active: &inactive})
	assert.ErrorIs(t, err, user.ErrCannotDeactivateSelf)

	officer := "Payroll Officer"
	name := "Clerk Khoza"
	resp, err := svc.Update(ctx, user.UpdateUserRequest{ID: 2, Role: &officer, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Payroll Officer", resp.Role)
	assert.Equal(t, "Clerk Khoza", resp.FullName)

	_, err = svc.Update(ctx, user.UpdateUserRequest{ID: 9, FullName: &name})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDeactivate(t *testing.T) {
	svc, users, activityRepo := newTestService(admin(), user.User{ID: 2, Username: "clerk", FullName: "Clerk", Role: user.RoleViewer, Active: true})
	ctx := servicetest.ActorContext(t, 1, user.RoleAdmin)

	assert.ErrorIs(t, svc.Deactivate(ctx, 1), user.ErrCannotDeactivateSelf)
	require.NoError(t, svc.Deactivate(ctx, 2))
	require.NoError(t, svc.Deactivate(ctx, 2))

	stored, err := users.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Equal(t, []activity.Action{activity.ActionUserDeactivated}, activityRepo.Actions())
}

// issueSession gives userID a stored refresh token and a fresh access token
// issued a second in the past.
func issueSession(t *testing.T, svc *UserServiceImpl, userID int64) time.Time {
	t.Helper()
	require.NoError(t, svc.tokens.Save(context.Background(), auth.IssuedRefreshToken{
		UserID:    userID,
		Token:     fmt.Sprintf("refresh-%d", userID),
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	return time.Now().Add(-time.Second)
}

func sessionActive(t *testing.T, svc *UserServiceImpl, userID int64) bool {
	t.Helper()
	active, err := svc.tokens.Active(context.Background(), fmt.Sprintf("refresh-%d", userID))
	require.NoError(t, err)
	return active
}

func TestDeactivate_EndsSessions(t *testing.T) {
	svc, _, _ := newTestService(admin(), user.User{ID: 2, Username: "clerk", FullName: "Clerk", Role: user.RoleViewer, Active: true})
	ctx := servicetest.ActorContext(t, 1, user.RoleAdmin)
	issuedAt := issueSession(t, svc, 2)

	require.NoError(t, svc.Deactivate(ctx, 2))

	assert.False(t, sessionActive(t, svc, 2))
	assert.True(t, svc.jwtService.IsUserRevoked(2, issuedAt))
	assert.False(t, svc.jwtService.IsUserRevoked(1, issuedAt))
}

func TestUpdate_RoleChangeEndsSessions(t *testing.T) {
	svc, _, _ := newTestService(
		admin(),
		user.User{ID: 2, Username: "clerk", FullName: "Clerk", Role: user.RoleViewer, Active: true},
		user.User{ID: 3, Username: "typist", FullName: "Typist", Role: user.RoleViewer, Active: true},
	)
	ctx := servicetest.ActorContext(t, 1, user.RoleAdmin)
	clerkIssued := issueSession(t, svc, 2)
	typistIssued := issueSession(t, svc, 3)

	officer := "Payroll Officer"
	_, err := svc.Update(ctx, user.UpdateUserRequest{ID: 2, Role: &officer})
	require.NoError(t, err)
	assert.False(t, sessionActive(t, svc, 2))
	assert.True(t, svc.jwtService.IsUserRevoked(2, clerkIssued))

	// A name change leaves the session alone.
	name := "Typist Nkosi"
	_, err = svc.Update(ctx, user.UpdateUserRequest{ID: 3, FullName: &name})
	require.NoError(t, err)
	assert.True(t, sessionActive(t, svc, 3))
	assert.False(t, svc.jwtService.IsUserRevoked(3, typistIssued))
}

func TestSeedAdmin(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	seeded, err := svc.SeedAdmin(ctx, user.CreateUserRequest{Username: "admin", Password: "change-me-now", FullName: "Administrator"})
	require.NoError(t, err)
	assert.True(t, seeded)

	stored, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, stored.Role)

	seeded, err = svc.SeedAdmin(ctx, user.CreateUserRequest{Username: "second", Password: "change-me-now", FullName: "Second"})
	require.NoError(t, err)
	assert.False(t, seeded)
}
