package api

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"benishangul-police/idregistry/internal/apperrors"
)

// VerifyHandler handles GET /api/ids/{id}. No auth: this is what a scanned
// QR code resolves to. Responses are the bare record, not the envelope,
// matching what card-scanning clients expect.
func (h *Handlers) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The route shares its pattern with PUT /api/ids/{id}; here the
		// parameter is the public card number.
		idNumber := chi.URLParam(r, "id")

		member, err := h.deps.Services.Verification.Verify(
			r.Context(),
			idNumber,
			clientAddress(r),
			r.UserAgent(),
		)
		if err != nil {
			if apperrors.HasKind(err, apperrors.KindNotFound) {
				h.deps.Metrics.VerifyLookupsTotal.WithLabelValues("miss").Inc()
				respondRaw(w, http.StatusNotFound, map[string]string{"error": "Not found"})
				return
			}
			respondWithError(w, err)
			return
		}

		h.deps.Metrics.VerifyLookupsTotal.WithLabelValues("hit").Inc()
		respondRaw(w, http.StatusOK, member)
	}
}

// clientAddress prefers the X-Forwarded-For header the reverse proxy sets.
func clientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
