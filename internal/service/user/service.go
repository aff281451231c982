package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	tx           database.Transactor
	userRepo     user.UserRepository
	activityRepo activity.ActivityRepository
	tokens       auth.RefreshTokenStore
	jwtService   jwt.Service
	hashCost     int
}

func NewUserService(
	tx database.Transactor,
	userRepo user.UserRepository,
	activityRepo activity.ActivityRepository,
	tokens auth.RefreshTokenStore,
	jwtService jwt.Service,
) user.UserService {
	return &UserServiceImpl{
		tx:           tx,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		tokens:       tokens,
		jwtService:   jwtService,
		hashCost:     bcrypt.DefaultCost,
	}
}

// endSessions revokes the stored refresh tokens of userID. The caller revokes
// the in-memory access tokens once the transaction has committed.
func (s *UserServiceImpl) endSessions(ctx context.Context, userID int64) error {
	n, err := s.tokens.RevokeAllForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("revoke sessions of user %d: %w", userID, err)
	}
	if n > 0 {
		slog.Info("revoked refresh tokens", "user_id", userID, "count", n)
	}
	return nil
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.create(ctx, req, &actor.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(created), nil
}

func (s *UserServiceImpl) create(ctx context.Context, req user.CreateUserRequest, actorID *int64) (user.User, error) {
	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		Role:         user.Role(req.Role),
		Active:       true,
	}

	var created user.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.userRepo.Create(ctx, newUser)
		if err != nil {
			return err
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  actorID,
			Action:  activity.ActionUserCreated,
			Details: fmt.Sprintf("Created user %s (%s)", created.Username, created.Role),
		})
	})
	return created, err
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.NewUserResponse(u))
	}
	return resp, nil
}

// Update implements user.UserService. Admins cannot change their own role
// or deactivate themselves.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.ID == actor.UserID {
		if req.Role != nil && user.Role(*req.Role) != actor.Role {
			return user.UserResponse{}, user.ErrCannotDemoteSelf
		}
		if req.Active != nil && !*req.Active {
			return user.UserResponse{}, user.ErrCannotDeactivateSelf
		}
	}

	var (
		updated       user.User
		sessionsEnded bool
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		wasRole, wasActive := existing.Role, existing.Active

		if req.FullName != nil {
			existing.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Email != nil {
			existing.Email = normalizeEmail(req.Email)
		}
		if req.Role != nil {
			existing.Role = user.Role(*req.Role)
		}
		if req.Active != nil {
			existing.Active = *req.Active
		}
		if req.Password != nil {
			existing.PasswordHash, err = s.hashPassword(*req.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
		}

		updated, err = s.userRepo.Update(ctx, existing)
		if err != nil {
			return err
		}

		// Tokens carry the role, so a new role or a lost login must not
		// outlive the change.
		if updated.Role != wasRole || (wasActive && !updated.Active) {
			if err := s.endSessions(ctx, updated.ID); err != nil {
				return err
			}
			sessionsEnded = true
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionUserUpdated,
			Details: fmt.Sprintf("Updated user %s", updated.Username),
		})
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	if sessionsEnded {
		s.jwtService.RevokeUser(updated.ID)
	}

	return user.NewUserResponse(updated), nil
}

// Deactivate implements user.UserService.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id int64) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if id == actor.UserID {
		return user.ErrCannotDeactivateSelf
	}

	deactivated := false
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !existing.Active {
			return nil
		}

		existing.Active = false
		if _, err := s.userRepo.Update(ctx, existing); err != nil {
			return err
		}
		if err := s.endSessions(ctx, id); err != nil {
			return err
		}
		deactivated = true

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionUserDeactivated,
			Details: fmt.Sprintf("Deactivated user %s", existing.Username),
		})
	})
	if err != nil {
		return err
	}
	if deactivated {
		s.jwtService.RevokeUser(id)
	}
	return nil
}

// SeedAdmin implements user.UserService.
func (s *UserServiceImpl) SeedAdmin(ctx context.Context, req user.CreateUserRequest) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	req.Role = string(user.RoleAdmin)
	if err := req.Validate(); err != nil {
		return false, err
	}

	created, err := s.create(ctx, req, nil)
	if err != nil {
		return false, err
	}

	slog.Info("seeded admin user", "username", created.Username)
	return true, nil
}
