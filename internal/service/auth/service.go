package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx           database.Transactor
	userRepo     user.UserRepository
	tokens       auth.RefreshTokenStore
	activityRepo activity.ActivityRepository
	jwtService   jwt.Service
}

func NewAuthService(
	tx database.Transactor,
	userRepo user.UserRepository,
	tokens auth.RefreshTokenStore,
	activityRepo activity.ActivityRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:           tx,
		userRepo:     userRepo,
		tokens:       tokens,
		activityRepo: activityRepo,
		jwtService:   jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.CanLogin() {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(userData.ID, userData.Username, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.tokens.Save(ctx, auth.IssuedRefreshToken{
			UserID:    userData.ID,
			Token:     tokenResponse.RefreshToken,
			ExpiresAt: time.Unix(tokenResponse.RefreshTokenExpiresIn, 0),
			Session:   sessionTrackReq,
		}); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}

		if err := a.userRepo.UpdateLastLogin(ctx, userData.ID); err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}

		return a.activityRepo.Create(ctx, activity.Entry{
			UserID:  &userData.ID,
			Action:  activity.ActionLogin,
			Details: fmt.Sprintf("%s signed in", userData.Username),
		})
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse.User = user.NewUserResponse(userData)
	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// Signature, expiry and token type.
	userID, err := a.jwtService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	active, err := a.tokens.Active(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !active {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !userData.CanLogin() {
		// A deactivated account loses every session, not only this one.
		if n, err := a.tokens.RevokeAllForUser(ctx, userData.ID); err != nil {
			slog.Error("failed to revoke refresh tokens of inactive user", "user_id", userData.ID, "error", err)
		} else if n > 0 {
			slog.Info("revoked refresh tokens of inactive user", "user_id", userData.ID, "count", n)
		}
		return auth.AccessTokenResponse{}, user.ErrUserInactive
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(userData.ID, userData.Username, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string, req auth.RefreshTokenRequest) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.RefreshToken != "" {
			if _, err := a.tokens.Revoke(ctx, req.RefreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}

		return a.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionLogout,
			Details: fmt.Sprintf("%s signed out", actor.Username),
		})
	})
	if err != nil {
		return err
	}

	if accessToken != "" {
		a.jwtService.RevokeToken(accessToken)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := a.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(userData), nil
}
