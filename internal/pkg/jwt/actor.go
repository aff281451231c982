package jwt

import (
	"context"
	"errors"
	"strconv"

	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var ErrNoActor = errors.New("no authenticated user in context")

// Actor is the authenticated user a request acts on behalf of.
type Actor struct {
	UserID   int64
	Username string
	Role     user.Role
}

// ActorFromContext reads the access token claims placed in ctx by jwtauth.Verifier.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrNoActor
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return Actor{}, ErrNoActor
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return Actor{}, ErrNoActor
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return Actor{UserID: userID, Username: username, Role: user.Role(role)}, nil
}
