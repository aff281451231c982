package middleware

import (
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired admits requests carrying a verified access token that has not
// been revoked by a logout or a change to its user. It must run after jwtauth.Verifier.
func AuthRequired(tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := checkAccessToken(r, tokens); err != nil {
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkAccessToken(r *http.Request, tokens jwt.Service) error {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return auth.ErrInvalidToken
	}

	// Refresh tokens share the signing key, so the type claim is what keeps
	// them off the API.
	if typ, ok := token.Get("type"); !ok || typ != jwt.TokenTypeAccess {
		return jwt.ErrInvalidTokenType
	}

	if tokens.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
		return auth.ErrInvalidToken
	}

	// A role change or deactivation ends the sessions issued before it.
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		return err
	}
	if tokens.IsUserRevoked(actor.UserID, token.IssuedAt()) {
		return auth.ErrInvalidToken
	}
	return nil
}
