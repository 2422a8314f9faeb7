package middleware

import (
	"net/http"

	"benishangul-police/idregistry/internal/db"
)

// StoreGuard holds the store's read lock for the duration of each request.
// A restore takes the write lock, so it waits for in-flight requests and
// blocks new ones until the file swap completes.
func StoreGuard(store *db.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store.RLock()
			defer store.RUnlock()
			next.ServeHTTP(w, r)
		})
	}
}
