package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/risewynn/qellum/pkg/auth"
	"github.com/risewynn/qellum/pkg/response"
)

type claimsKey struct{}

// Auth validates the bearer token and stores the verified claims in the
// request context. Handlers read the caller identity via UserIDFromCtx and
// must never trust a uid supplied in the request body.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user identity, if any.
func UserIDFromCtx(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims)
	if !ok {
		return "", false
	}
	return claims.UID, true
}

// RoleFromCtx returns the authenticated caller's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims)
	if !ok {
		return "", false
	}
	return claims.Role, true
}
