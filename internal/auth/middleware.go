package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/screenengine/backend/internal/models"
	pkghttp "github.com/screenengine/backend/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

// PrincipalContextKey is the key under which the request principal is stored.
const PrincipalContextKey contextKey = "principal"

// TokenValidator parses a bearer token and rebuilds its principal.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*models.Principal, error)
}

// Authenticate validates the Authorization bearer token and injects the
// rebuilt principal into the request context. Requests without a valid
// token are rejected with 401; the response never says which check failed.
func Authenticate(validator TokenValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				pkghttp.WriteUnauthorized(w, models.ErrUnauthenticated.Error())
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				pkghttp.WriteUnauthorized(w, models.ErrUnauthenticated.Error())
				return
			}

			principal, err := validator.Validate(r.Context(), parts[1])
			if err != nil {
				pkghttp.WriteUnauthorized(w, models.ErrTokenInvalid.Error())
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require enforces a role requirement on the request principal. Must run
// after Authenticate. A missing principal is 401, an insufficient one 403.
func Require(req Requirement) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil {
				pkghttp.WriteUnauthorized(w, models.ErrUnauthenticated.Error())
				return
			}

			if !IsAllowed(principal, req) {
				pkghttp.WriteForbidden(w, models.ErrForbidden.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal extracts the request principal from the context, or nil.
func GetPrincipal(ctx context.Context) *models.Principal {
	principal, ok := ctx.Value(PrincipalContextKey).(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}
