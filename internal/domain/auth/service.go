package auth

import (
	"context"

	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// Logout revokes the refresh token, when given, and the access token the
	// request was made with.
	Logout(ctx context.Context, accessToken string, req RefreshTokenRequest) error
	Me(ctx context.Context) (user.UserResponse, error)
}
