package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
)

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenStore {
	return &refreshTokenRepositoryImpl{db: db}
}

// tokenDigest is the hex SHA-256 of token; it fits token_hash VARCHAR(64).
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Save implements auth.RefreshTokenStore.
func (r *refreshTokenRepositoryImpl) Save(ctx context.Context, issued auth.IssuedRefreshToken) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
	`, issued.UserID, tokenDigest(issued.Token), issued.ExpiresAt.UTC(),
		issued.Session.UserAgent, issued.Session.IPAddress)
	return database.Wrap("save refresh token", err)
}

// Active implements auth.RefreshTokenStore.
func (r *refreshTokenRepositoryImpl) Active(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var active bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM refresh_tokens
			WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()
		)
	`, tokenDigest(token)).Scan(&active)
	if err != nil {
		return false, database.Wrap("check refresh token", err)
	}
	return active, nil
}

// Revoke implements auth.RefreshTokenStore.
func (r *refreshTokenRepositoryImpl) Revoke(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenDigest(token))
	if err != nil {
		return false, database.Wrap("revoke refresh token", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RevokeAllForUser implements auth.RefreshTokenStore.
func (r *refreshTokenRepositoryImpl) RevokeAllForUser(ctx context.Context, userID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`, userID)
	if err != nil {
		return 0, database.Wrap("revoke user refresh tokens", err)
	}
	return tag.RowsAffected(), nil
}
