package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired admits requests carrying a verified access token. It runs
// after jwtauth.Verifier. Expired tokens answer auth.ErrTokenExpired so
// clients can tell a refresh from a re-login; any other verification failure,
// a missing token or a non-access token answers auth.ErrInvalidToken.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifyAccessToken(r); err != nil {
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func verifyAccessToken(r *http.Request) error {
	token, claims, err := jwtauth.FromContext(r.Context())
	switch {
	case errors.Is(err, jwtauth.ErrExpired):
		return auth.ErrTokenExpired
	case err != nil, token == nil:
		return auth.ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return auth.ErrInvalidToken
	}
	return nil
}
