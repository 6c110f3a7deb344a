package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type OwnersHandler struct {
	repo *repository.Repository
}

func NewOwnersHandler(repo *repository.Repository) *OwnersHandler {
	return &OwnersHandler{repo: repo}
}

func ownerIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
	return id, err == nil
}

// GET /api/v1/owners/{ownerID}
func (h *OwnersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid owner id")
		return
	}
	owner, err := h.repo.GetOwner(r.Context(), ownerID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, owner)
}

type updateOwnerDTO struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

// PATCH /api/v1/owners/{ownerID}
func (h *OwnersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid owner id")
		return
	}
	var req updateOwnerDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	owner, err := h.repo.UpdateOwner(r.Context(), ownerID, repository.OwnerUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, owner)
}

// DELETE /api/v1/owners/{ownerID}
func (h *OwnersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid owner id")
		return
	}
	if err := h.repo.DeleteOwner(r.Context(), ownerID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": ownerID})
}
