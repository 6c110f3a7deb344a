package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/repository"

	"go.uber.org/zap"
)

// AccountStore is the slice of the repository the auth endpoints use.
type AccountStore interface {
	CreateUser(ctx context.Context, u repository.NewUser) (*domain.User, error)
	CreateOwner(ctx context.Context, o repository.NewOwner) (*domain.Owner, error)
	GetUserCredentials(ctx context.Context, username string) (*domain.User, string, error)
	GetOwnerCredentials(ctx context.Context, username string) (*domain.Owner, string, error)
}

type AuthHandler struct {
	accounts   AccountStore
	jwtSecret  string
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthHandler(accounts AccountStore, jwtSecret string, bcryptCost int, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtSecret:  jwtSecret,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

type loginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponseDTO struct {
	Token string `json:"token"`
}

// POST /auth/token — unified login for shoppers and store owners. Tries the
// user table first, then owners, mirroring a single login form for both.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, hash, err := h.accounts.GetUserCredentials(r.Context(), req.Username)
	if err == nil && auth.CheckPassword(hash, req.Password) {
		token, terr := auth.CreateUserToken(h.jwtSecret, user.ID, user.IsAdmin)
		if terr != nil {
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respondJSON(w, http.StatusOK, tokenResponseDTO{Token: token})
		return
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		respondRepoError(w, err)
		return
	}

	owner, hash, err := h.accounts.GetOwnerCredentials(r.Context(), req.Username)
	if err == nil && auth.CheckPassword(hash, req.Password) {
		token, terr := auth.CreateOwnerToken(h.jwtSecret, owner.ID, owner.IsAdmin)
		if terr != nil {
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respondJSON(w, http.StatusOK, tokenResponseDTO{Token: token})
		return
	}
	if err != nil && !errors.Is(err, repository.ErrOwnerNotFound) {
		respondRepoError(w, err)
		return
	}

	respondError(w, http.StatusUnauthorized, "invalid username or password")
}

type registerUserDTO struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// POST /auth/register-user
func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "username, password and email are required")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.accounts.CreateUser(r.Context(), repository.NewUser{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}

	token, err := auth.CreateUserToken(h.jwtSecret, user.ID, user.IsAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.logger.Info("user_registered", zap.Int64("user_id", user.ID))
	respondJSON(w, http.StatusCreated, tokenResponseDTO{Token: token})
}

type registerOwnerDTO struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Roles     string `json:"roles"`
}

// POST /auth/register-owner
func (h *AuthHandler) RegisterOwner(w http.ResponseWriter, r *http.Request) {
	var req registerOwnerDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "username, password and email are required")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	owner, err := h.accounts.CreateOwner(r.Context(), repository.NewOwner{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Roles:        req.Roles,
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}

	token, err := auth.CreateOwnerToken(h.jwtSecret, owner.ID, owner.IsAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.logger.Info("owner_registered", zap.Int64("owner_id", owner.ID))
	respondJSON(w, http.StatusCreated, tokenResponseDTO{Token: token})
}
