package api

import (
	"encoding/json"
	"net/http"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/models/dtos/requests"
)

// GetAssetsHandler handles GET /api/assets
func (h *Handlers) GetAssetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := h.deps.Services.Assets.List(r.Context())
		if err != nil {
			respondWithError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &assets)
	}
}

// UpsertAssetHandler handles POST /api/assets
func (h *Handlers) UpsertAssetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.UpsertAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
			return
		}

		if err := h.deps.Services.Assets.Upsert(r.Context(), req.Key, req.Value); err != nil {
			respondWithError(w, err)
			return
		}

		ok := map[string]bool{"success": true}
		respondWithSuccess(w, http.StatusOK, &ok)
	}
}
