package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/incidra/incidra/internal/ports"
)

type contextKey string

const authClaimsKey contextKey = "auth_claims"

// AuthMiddleware extracts and verifies the caller's bearer token.
type AuthMiddleware struct {
	tokenService ports.TokenService
}

func NewAuthMiddleware(tokenService ports.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// RequireAuth rejects requests without a valid token before the handler
// runs. The "Bearer " prefix is optional: a bare token is accepted too.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			Unauthorized(w, "Authentication required")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.tokenService.Verify(token)
		if err != nil {
			Unauthorized(w, "Invalid authentication token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetClaims retrieves verified caller claims from the request context.
func GetClaims(ctx context.Context) *ports.Claims {
	if claims, ok := ctx.Value(authClaimsKey).(*ports.Claims); ok {
		return claims
	}
	return nil
}
