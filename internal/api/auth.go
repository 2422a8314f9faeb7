package api

import (
	"encoding/json"
	"net/http"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/models/dtos/requests"
	"benishangul-police/idregistry/internal/models/dtos/responses"
)

// LoginHandler handles POST /api/auth/login
func (h *Handlers) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
			return
		}

		token, expiresAt, principal, err := h.deps.Services.Accounts.Login(r.Context(), &req)
		if err != nil {
			respondWithError(w, err)
			return
		}

		resp := responses.LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User: responses.PrincipalInfo{
				ID:       principal.AccountID,
				Username: principal.Username,
				Role:     principal.Role,
			},
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
