package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/NEARFoundation/events-platform/internal/auth"
)

type callerKey struct{}

// callerFrom returns the authenticated account stored by requireAuth.
func callerFrom(ctx context.Context) string {
	v, _ := ctx.Value(callerKey{}).(string)
	return v
}

// requireAuth wraps a mutating handler: it resolves the Bearer token to an
// account identity and stores it on the request context. Requests without a
// valid token get 401.
func requireAuth(verifier auth.Verifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		account, err := verifier.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, account)))
	}
}
