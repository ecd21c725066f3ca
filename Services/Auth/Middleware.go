package auth

import (
	"context"
	"net/http"
	"strings"

	utils "vidhive/Utils"
)

type contextKey string

const claimsContextKey = contextKey("claims")

// CheckAuth extracts and verifies the bearer token from the Authorization
// header and attaches the decoded claims to the request context. Missing or
// invalid tokens are both rejected with 401.
func (s *Service) CheckAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "No token provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
			return
		}

		claims, err := s.VerifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims attached by CheckAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}
