// File: internal/middleware/admin_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/zelig/zelig-backend/internal/auth"
)

// RequireAdmin only lets through requests carrying a valid admin bearer token.
func RequireAdmin(secret []byte, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeUnauthorized(w)
				return
			}

			subject, err := auth.ValidateToken(strings.TrimSpace(token), secret)
			if err != nil {
				logger.Warn("admin token rejected", "path", r.URL.Path, "error", err)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), AdminSubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="zelig-admin"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
