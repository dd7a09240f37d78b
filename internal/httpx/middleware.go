package httpx

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const usernameKey ctxKey = iota

// Auth memvalidasi bearer token lewat verify (return username) dan menaruh
// username di context. Identitas selalu dari token, tidak pernah dari body.
func Auth(verify func(token string) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			username, err := verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), usernameKey, username)))
		})
	}
}

// Username mengembalikan identitas dari context ("" kalau route tidak di-guard).
func Username(ctx context.Context) string {
	s, _ := ctx.Value(usernameKey).(string)
	return s
}
