package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type StoresHandler struct {
	repo *repository.Repository
}

func NewStoresHandler(repo *repository.Repository) *StoresHandler {
	return &StoresHandler{repo: repo}
}

func storeIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
	return id, err == nil
}

// authorizeStoreOwner checks that the authenticated owner operates the store
// in the route (admins pass). Returns false after writing the response.
func authorizeStoreOwner(w http.ResponseWriter, r *http.Request, repo *repository.Repository, storeID int64) bool {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if claims.IsAdmin {
		return true
	}
	ownerID, err := repo.GetStoreOwnerID(r.Context(), storeID)
	if err != nil {
		respondRepoError(w, err)
		return false
	}
	if claims.OwnerID == nil || *claims.OwnerID != ownerID {
		respondError(w, http.StatusUnauthorized, "not authorized for this store")
		return false
	}
	return true
}

type newStoreDTO struct {
	StoreName   string `json:"storeName"`
	Logo        string `json:"logo"`
	ColorScheme string `json:"colorScheme"`
	SiteFont    string `json:"siteFont"`
}

// POST /api/v1/stores — the store belongs to the authenticated owner.
func (h *StoresHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.OwnerID == nil {
		respondError(w, http.StatusUnauthorized, "store owner authentication required")
		return
	}
	var req newStoreDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.StoreName == "" {
		respondError(w, http.StatusBadRequest, "storeName is required")
		return
	}
	store, err := h.repo.CreateStore(r.Context(), *claims.OwnerID, repository.NewStore{
		Name:        req.StoreName,
		Logo:        req.Logo,
		ColorScheme: req.ColorScheme,
		SiteFont:    req.SiteFont,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, store)
}

// GET /api/v1/stores/{storeID} — public storefront view.
func (h *StoresHandler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	store, err := h.repo.GetStore(r.Context(), storeID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, store)
}

type updateStoreDTO struct {
	StoreName   *string `json:"storeName"`
	Logo        *string `json:"logo"`
	ColorScheme *string `json:"colorScheme"`
	SiteFont    *string `json:"siteFont"`
}

// PUT /api/v1/stores — updates the authenticated owner's store.
func (h *StoresHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.OwnerID == nil {
		respondError(w, http.StatusUnauthorized, "store owner authentication required")
		return
	}
	var req updateStoreDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	store, err := h.repo.UpdateStore(r.Context(), *claims.OwnerID, repository.StoreUpdate{
		Name:        req.StoreName,
		Logo:        req.Logo,
		ColorScheme: req.ColorScheme,
		SiteFont:    req.SiteFont,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, store)
}

// DELETE /api/v1/stores — deletes the authenticated owner's store.
func (h *StoresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.OwnerID == nil {
		respondError(w, http.StatusUnauthorized, "store owner authentication required")
		return
	}
	if err := h.repo.DeleteStore(r.Context(), *claims.OwnerID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
