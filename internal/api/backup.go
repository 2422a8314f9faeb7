package api

import (
	"fmt"
	"net/http"
	"time"
)

// DownloadBackupHandler handles GET /api/backup. Streams the sqlite file as
// an attachment.
func (h *Handlers) DownloadBackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := fmt.Sprintf("registry-%s.sqlite", time.Now().UTC().Format("20060102-150405"))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)

		if err := h.deps.Services.Backup.Snapshot(w); err != nil {
			// Headers may already be gone; best we can do is log via the error path.
			respondWithError(w, err)
			return
		}
	}
}

// RestoreBackupHandler handles POST /api/restore with the database file as
// the request body.
func (h *Handlers) RestoreBackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		if err := h.deps.Services.Backup.Restore(r.Context(), r.Body); err != nil {
			respondWithError(w, err)
			return
		}

		ok := map[string]bool{"success": true}
		respondWithSuccess(w, http.StatusOK, &ok)
	}
}
