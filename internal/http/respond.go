package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront-backend/internal/repository"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorEnvelope{Error: errorBody{Message: message, Status: status}})
}

// respondRepoError maps repository sentinels onto status codes so handlers
// don't repeat the same errors.Is ladder everywhere.
func respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrStoreNotFound),
		errors.Is(err, repository.ErrCarouselNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrOwnerNotFound),
		errors.Is(err, repository.ErrAddressNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateUsername),
		errors.Is(err, repository.ErrDuplicateStore):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
