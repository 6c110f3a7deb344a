package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/payment"
	"storefront-backend/internal/service"

	"go.uber.org/zap"
)

// SessionStarter initiates a processor checkout session for a cart.
type SessionStarter interface {
	CreateSession(ctx context.Context, userID *int64, items []domain.CartItem) (string, error)
}

// DeliveryHandler reconciles one raw webhook delivery.
type DeliveryHandler interface {
	HandleDelivery(ctx context.Context, rawBody []byte, signatureHeader string) error
}

type CheckoutHandler struct {
	checkout   SessionStarter
	reconciler DeliveryHandler
	logger     *zap.Logger
}

func NewCheckoutHandler(checkout SessionStarter, reconciler DeliveryHandler, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:   checkout,
		reconciler: reconciler,
		logger:     logger,
	}
}

type createSessionRequestDTO struct {
	CartItems []domain.CartItem `json:"cartItems"`
}

type createSessionResponseDTO struct {
	URL string `json:"url"`
}

// POST /api/v1/checkout/session — guest checkout is allowed, so this route
// carries no auth requirement; a valid token just pins the buyer's user id
// into the session metadata.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.CartItems) == 0 {
		respondError(w, http.StatusBadRequest, "cartItems must not be empty")
		return
	}
	for _, item := range req.CartItems {
		if item.ProductID <= 0 || item.StoreID <= 0 {
			respondError(w, http.StatusBadRequest, "every cart item needs a product and store reference")
			return
		}
		if item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}
		if item.Price < 0 {
			respondError(w, http.StatusBadRequest, "price must not be negative")
			return
		}
	}

	var userID *int64
	if claims := claimsFromContext(r.Context()); claims != nil {
		userID = claims.UserID
	}

	url, err := h.checkout.CreateSession(r.Context(), userID, req.CartItems)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("checkout_session_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not create checkout session")
		return
	}

	respondJSON(w, http.StatusOK, createSessionResponseDTO{URL: url})
}

// POST /api/v1/checkout/webhook — the body is read raw because signature
// verification runs over the exact bytes the processor signed. Past
// verification the delivery is always acknowledged with 200 so the
// processor does not redeliver.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	err = h.reconciler.HandleDelivery(r.Context(), rawBody, r.Header.Get(payment.SignatureHeader))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
}
