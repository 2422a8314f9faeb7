package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/models/dtos/requests"
	"benishangul-police/idregistry/internal/models/dtos/responses"
	"benishangul-police/idregistry/internal/services"
)

// ListMembersHandler handles GET /api/ids?search=
func (h *Handlers) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")

		members, err := h.deps.Repo.Members.List(r.Context(), search)
		if err != nil {
			respondWithError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &members)
	}
}

// CreateMemberHandler handles POST /api/ids
func (h *Handlers) CreateMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.MemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
			return
		}

		member, err := h.deps.Services.Issuance.Issue(r.Context(), &req)
		if err != nil {
			respondWithError(w, err)
			return
		}

		h.deps.Metrics.CardsIssuedTotal.Inc()

		resp := responses.IssueResponse{IDNumber: member.IDNumber}
		respondWithSuccess(w, http.StatusCreated, &resp)
	}
}

// UpdateMemberHandler handles PUT /api/ids/{id}. The id_number is immutable;
// whatever the body carries, the stored number wins.
func (h *Handlers) UpdateMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid member id"))
			return
		}

		var req requests.MemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, apperrors.New(apperrors.KindValidation, "invalid request body"))
			return
		}

		member, err := h.deps.Repo.Members.GetByID(r.Context(), uint(id))
		if err != nil {
			respondWithError(w, err)
			return
		}

		services.ApplyUpdate(member, &req)
		if err := h.deps.Repo.Members.Update(r.Context(), member); err != nil {
			respondWithError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, member)
	}
}

// ListScansHandler handles GET /api/scans/{id_number}
func (h *Handlers) ListScansHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idNumber := chi.URLParam(r, "id_number")

		scans, err := h.deps.Services.Verification.ListScans(r.Context(), idNumber)
		if err != nil {
			respondWithError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &scans)
	}
}
