package http

import (
	"context"
	"net/http"
	"strconv"

	"storefront-backend/internal/domain"

	"github.com/go-chi/chi/v5"
)

// OrderReader serves the order read API.
type OrderReader interface {
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrdersByStore(ctx context.Context, storeID int64) ([]*domain.Order, error)
	GetStoreOwnerID(ctx context.Context, storeID int64) (int64, error)
}

type OrdersHandler struct {
	orders OrderReader
}

func NewOrdersHandler(orders OrderReader) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// GET /api/v1/orders/{orderID}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GET /api/v1/stores/{storeID}/orders — store dashboards only; the caller
// must own the store (or be an admin).
func (h *OrdersHandler) ListStoreOrders(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}

	if !h.authorizeStore(w, r, storeID) {
		return
	}

	orders, err := h.orders.ListOrdersByStore(r.Context(), storeID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) authorizeStore(w http.ResponseWriter, r *http.Request, storeID int64) bool {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if claims.IsAdmin {
		return true
	}
	ownerID, err := h.orders.GetStoreOwnerID(r.Context(), storeID)
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
