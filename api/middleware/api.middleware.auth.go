// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/urbansense/wastehub/internal/auth"
	"github.com/urbansense/wastehub/internal/errors"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware verifies locally-signed bearer tokens. The identity
// provider is only consulted at login; request-time verification is a pure
// signature check.
type AuthMiddleware struct {
	auth *auth.Service
}

func NewAuthMiddleware(authSvc *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{auth: authSvc}
}

// Authenticate validates the token and adds the claims to the context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.ExtractBearer(r.Header.Get("Authorization"))
		if token == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}

		claims, err := m.auth.VerifyToken(token)
		if err != nil {
			handleError(w, errors.NewAuthError("invalid token", err))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles ensures the authenticated user carries one of the given
// roles.
func (m *AuthMiddleware) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := UserFromContext(r.Context())
			if !ok {
				handleError(w, errors.NewAuthError("no user context found", nil))
				return
			}

			if !hasAnyRole(claims.Role, roles) {
				handleError(w, errors.NewAuthorizationError("insufficient permissions", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the authenticated claims set by Authenticate.
func UserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(userContextKey).(*auth.Claims)
	return claims, ok
}

func hasAnyRole(userRole string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if role == "*" || role == userRole {
			return true
		}
	}
	return false
}

func handleError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   err.Message,
	})
}
