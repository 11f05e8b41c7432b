package middleware

import (
	"net/http"
	"slices"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole allows the request through when the token role is one of roles
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, auth.ErrInsufficientRole)
				return
			}

			if !slices.Contains(roles, role) {
				response.HandleError(w, auth.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
