package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"benishangul-police/idregistry/internal/auth"
	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/models/dtos/responses"
)

func deny(w http.ResponseWriter, statusCode int, kind, message string) {
	resp := responses.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Error:     message,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// AuthMiddleware verifies the bearer token and puts the principal on the
// request context. Missing or invalid tokens are a 401; role checks happen
// later in RequireOperation.
func AuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				deny(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			principal, err := tokens.Verify(token)
			if err != nil {
				deny(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := auth.SetPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOperation checks the capability table for the authenticated
// principal's role. A valid token with an insufficient role is a 403.
func RequireOperation(op constants.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.GetPrincipal(r.Context())
			if principal == nil {
				deny(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			if !principal.Can(op) {
				deny(w, http.StatusForbidden, "forbidden", "role not permitted for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
