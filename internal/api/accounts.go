package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/models/dtos/requests"
)

// ListAccountsHandler handles GET /api/accounts
func (h *Handlers) ListAccountsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := h.deps.Services.Accounts.List(r.Context())
		if err != nil {
			respondWithError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &accounts)
	}
}

// CreateAccountHandler handles POST /api/accounts
func (h *Handlers) CreateAccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
			return
		}

		account, err := h.deps.Services.Accounts.Create(r.Context(), &req)
		if err != nil {
			respondWithError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, account)
	}
}

// UpdateAccountRoleHandler handles PUT /api/accounts/{id}
func (h *Handlers) UpdateAccountRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid account id"))
			return
		}

		var req requests.UpdateAccountRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
			return
		}

		if err := h.deps.Services.Accounts.UpdateRole(r.Context(), uint(id), &req); err != nil {
			respondWithError(w, err)
			return
		}

		ok := map[string]bool{"success": true}
		respondWithSuccess(w, http.StatusOK, &ok)
	}
}

// DeleteAccountHandler handles DELETE /api/accounts/{id}
func (h *Handlers) DeleteAccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid account id"))
			return
		}

		if err := h.deps.Services.Accounts.Delete(r.Context(), uint(id)); err != nil {
			respondWithError(w, err)
			return
		}

		ok := map[string]bool{"success": true}
		respondWithSuccess(w, http.StatusOK, &ok)
	}
}
