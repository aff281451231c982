package jwt

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidTokenType = errors.New("unexpected token type")

type Service interface {
	GenerateAccessToken(userID int64, username string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID int64) (token string, expiresAt int64, err error)
	ParseRefreshToken(tokenString string) (userID int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool

	// RevokeUser rejects every access token issued to userID up to now.
	RevokeUser(userID int64)
	IsUserRevoked(userID int64, issuedAt time.Time) bool
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	userCutoffs                map[int64]int64
	mu                         sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
		userCutoffs:                make(map[int64]int64),
	}
}

func (j *JWTService) GenerateAccessToken(userID int64, username string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	now := time.Now()
	expiresAt = now.Add(expDuration).Unix()

	claims := map[string]interface{}{
		"iat":      now.Unix(),
		"user_id":  strconv.FormatInt(userID, 10),
		"username": username,
		"role":     string(role),
		"type":     TokenTypeAccess,
		"exp":      expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID int64) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":     uuid.NewString(),
		"user_id": strconv.FormatInt(userID, 10),
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
	})
	return tokenString, expiresAt, err
}

// ParseRefreshToken verifies signature and expiry and returns the subject.
func (j *JWTService) ParseRefreshToken(tokenString string) (int64, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return 0, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return 0, ErrInvalidTokenType
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return 0, jwt.ErrInvalidJWT()
	}
	userIDStr, ok := userIDVal.(string)
	if !ok {
		return 0, jwt.ErrInvalidJWT()
	}

	return strconv.ParseInt(userIDStr, 10, 64)
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now().Unix()
	j.revokedTokens[token] = now

	// Entries older than the access token lifetime can no longer match.
	horizon := now - j.accessLifetime()
	for t, revokedAt := range j.revokedTokens {
		if revokedAt < horizon {
			delete(j.revokedTokens, t)
		}
	}
	for id, cutoff := range j.userCutoffs {
		if cutoff < horizon {
			delete(j.userCutoffs, id)
		}
	}
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) RevokeUser(userID int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.userCutoffs[userID] = time.Now().Unix()
}

// IsUserRevoked compares whole seconds, so a token issued in the same second
// as the revocation is rejected too.
func (j *JWTService) IsUserRevoked(userID int64, issuedAt time.Time) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	cutoff, ok := j.userCutoffs[userID]
	return ok && issuedAt.Unix() <= cutoff
}

// accessLifetime is the access token lifetime in seconds, at least a day.
func (j *JWTService) accessLifetime() int64 {
	const day = int64(24 * time.Hour / time.Second)
	d, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil || int64(d/time.Second) < day {
		return day
	}
	return int64(d / time.Second)
}
