package auth

import (
	"context"
	"time"
)

// IssuedRefreshToken is a refresh token handed to a client at login. Only a
// hash of Token is stored.
type IssuedRefreshToken struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Session   SessionTrackingRequest
}

// RefreshTokenStore tracks issued refresh tokens so they can be revoked
// before they expire.
type RefreshTokenStore interface {
	Save(ctx context.Context, issued IssuedRefreshToken) error
	// Active reports whether token was issued here and is neither expired nor
	// revoked.
	Active(ctx context.Context, token string) (bool, error)
	// Revoke reports whether a live token was revoked.
	Revoke(ctx context.Context, token string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID int64) (int64, error)
}
