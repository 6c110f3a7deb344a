package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type UsersHandler struct {
	repo *repository.Repository
}

func NewUsersHandler(repo *repository.Repository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

func userIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	return id, err == nil
}

// GET /api/v1/users/{userID}
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateUserDTO struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

// PATCH /api/v1/users/{userID}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req updateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, err := h.repo.UpdateUser(r.Context(), userID, repository.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DELETE /api/v1/users/{userID}
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.repo.DeleteUser(r.Context(), userID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": userID})
}

type addressDTO struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
}

// POST /api/v1/users/{userID}/addresses
func (h *UsersHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req addressDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.StreetAddress == "" || req.City == "" {
		respondError(w, http.StatusBadRequest, "streetAddress and city are required")
		return
	}
	address, err := h.repo.CreateAddress(r.Context(), domain.Address{
		UserID:        userID,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, address)
}

type updateAddressDTO struct {
	StreetAddress *string `json:"streetAddress"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zipCode"`
}

// PUT /api/v1/users/{userID}/addresses
func (h *UsersHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req updateAddressDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	address, err := h.repo.UpdateAddress(r.Context(), userID, repository.AddressUpdate{
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, address)
}

// DELETE /api/v1/users/{userID}/addresses
func (h *UsersHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.repo.DeleteAddress(r.Context(), userID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
