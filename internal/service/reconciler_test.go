package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_reconciler_test"

func signedDelivery(t *testing.T, event payment.Event) ([]byte, string) {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body, payment.SignaturePayload(body, testWebhookSecret, time.Now().Unix())
}

func cartMetadataJSON(t *testing.T, userID *int64, items []domain.CartItem) string {
	t.Helper()
	meta := domain.CartMetadata{
		Version: domain.CartMetadataVersion,
		UserID:  userID,
		Items:   items,
	}
	raw, err := json.Marshal(meta)
	require.NoError(t, err)
	return string(raw)
}

func TestHandleDelivery_BadSignature(t *testing.T) {
	orders := &MockOrderCommitter{}
	inventory := &MockStockDecrementer{}
	users := &MockBuyerResolver{}
	rec := newTestReconciler(orders, inventory, users)

	body := []byte(`{"type":"payment.succeeded"}`)
	err := rec.HandleDelivery(context.Background(), body, "t=1,v1=bogus")

	assert.ErrorIs(t, err, payment.ErrBadSignature)
	assert.Zero(t, orders.Calls)
	assert.Empty(t, inventory.Decrements)
	assert.Zero(t, users.Calls)
}

func TestHandleDelivery_MalformedBody(t *testing.T) {
	rec := newTestReconciler(&MockOrderCommitter{}, &MockStockDecrementer{}, &MockBuyerResolver{})

	body := []byte(`{not json`)
	header := payment.SignaturePayload(body, testWebhookSecret, time.Now().Unix())

	err := rec.HandleDelivery(context.Background(), body, header)
	assert.ErrorIs(t, err, ErrBadEvent)
}

func TestHandleDelivery_IgnoresOtherEventTypes(t *testing.T) {
	orders := &MockOrderCommitter{}
	rec := newTestReconciler(orders, &MockStockDecrementer{}, &MockBuyerResolver{})

	body, header := signedDelivery(t, payment.Event{
		ID:   "evt_refund",
		Type: "payment.refunded",
	})

	err := rec.HandleDelivery(context.Background(), body, header)
	require.NoError(t, err)
	assert.Zero(t, orders.Calls)
}

func TestHandleDelivery_CommitsOrderForKnownUser(t *testing.T) {
	orders := &MockOrderCommitter{OrderID: 42}
	inventory := &MockStockDecrementer{}
	users := &MockBuyerResolver{}
	rec := newTestReconciler(orders, inventory, users)

	userID := int64(7)
	items := []domain.CartItem{
		{ProductID: 1, StoreID: 1, Quantity: 2, Price: 10},
	}
	body, header := signedDelivery(t, payment.Event{
		ID:          "evt_ok",
		Type:        payment.EventPaymentSucceeded,
		AmountTotal: 2000,
		Metadata:    cartMetadataJSON(t, &userID, items),
	})

	err := rec.HandleDelivery(context.Background(), body, header)
	require.NoError(t, err)

	require.Equal(t, 1, orders.Calls)
	require.NotNil(t, orders.CreatedUserID)
	assert.Equal(t, userID, *orders.CreatedUserID)
	assert.Equal(t, float64(2000), orders.CreatedTotal)
	require.Len(t, orders.CreatedCart, 1)
	assert.Equal(t, 2, orders.CreatedCart[0].Quantity)
	assert.Equal(t, float64(10), orders.CreatedCart[0].Price)

	assert.Equal(t, 2, inventory.Decrements[1])
	assert.Zero(t, users.Calls, "metadata user id should skip email resolution")
}

func TestHandleDelivery_ProvisionsGuestAccount(t *testing.T) {
	orders := &MockOrderCommitter{OrderID: 99}
	inventory := &MockStockDecrementer{}
	users := &MockBuyerResolver{User: &domain.User{ID: 55, Email: "guest@example.com"}}
	rec := newTestReconciler(orders, inventory, users)

	items := []domain.CartItem{
		{ProductID: 3, StoreID: 1, Quantity: 1, Price: 5.5},
	}
	body, header := signedDelivery(t, payment.Event{
		ID:            "evt_guest",
		Type:          payment.EventPaymentSucceeded,
		AmountTotal:   550,
		CustomerEmail: "guest@example.com",
		CustomerName:  "Guest Buyer",
		Metadata:      cartMetadataJSON(t, nil, items),
	})

	err := rec.HandleDelivery(context.Background(), body, header)
	require.NoError(t, err)

	assert.Equal(t, 1, users.Calls)
	assert.Equal(t, "guest@example.com", users.ResolvedEmail)
	assert.Equal(t, "Guest Buyer", users.ResolvedName)
	require.NotNil(t, orders.CreatedUserID)
	assert.Equal(t, int64(55), *orders.CreatedUserID)
}

func TestHandleDelivery_AnonymousWithoutEmail(t *testing.T) {
	orders := &MockOrderCommitter{OrderID: 100}
	users := &MockBuyerResolver{}
	rec := newTestReconciler(orders, &MockStockDecrementer{}, users)

	items := []domain.CartItem{{ProductID: 2, StoreID: 1, Quantity: 1, Price: 3}}
	body, header := signedDelivery(t, payment.Event{
		ID:          "evt_anon",
		Type:        payment.EventPaymentSucceeded,
		AmountTotal: 300,
		Metadata:    cartMetadataJSON(t, nil, items),
	})

	err := rec.HandleDelivery(context.Background(), body, header)
	require.NoError(t, err)

	assert.Zero(t, users.Calls)
	assert.Equal(t, 1, orders.Calls)
	assert.Nil(t, orders.CreatedUserID)
}

func TestHandleDelivery_BadMetadataAcked(t *testing.T) {
	orders := &MockOrderCommitter{}
	rec := newTestReconciler(orders, &MockStockDecrementer{}, &MockBuyerResolver{})

	for _, metadata := range []string{
		"",
		"not json",
		`{"v":2,"items":[{"productId":1,"quantity":1}]}`,
		`{"v":1,"items":[]}`,
	} {
		body, header := signedDelivery(t, payment.Event{
			ID:          "evt_meta",
			Type:        payment.EventPaymentSucceeded,
			AmountTotal: 100,
			Metadata:    metadata,
		})

		err := rec.HandleDelivery(context.Background(), body, header)
		assert.NoError(t, err, "metadata %q must be acked, not redelivered", metadata)
	}
	assert.Zero(t, orders.Calls)
}

func TestHandleDelivery_InternalErrorsSwallowed(t *testing.T) {
	orders := &MockOrderCommitter{Err: errors.New("db down")}
	inventory := &MockStockDecrementer{}
	rec := newTestReconciler(orders, inventory, &MockBuyerResolver{})

	userID := int64(7)
	items := []domain.CartItem{{ProductID: 1, StoreID: 1, Quantity: 1, Price: 1}}
	body, header := signedDelivery(t, payment.Event{
		ID:          "evt_fail",
		Type:        payment.EventPaymentSucceeded,
		AmountTotal: 100,
		Metadata:    cartMetadataJSON(t, &userID, items),
	})

	err := rec.HandleDelivery(context.Background(), body, header)
	assert.NoError(t, err, "commit failures are logged and acked")
	assert.Equal(t, 1, orders.Calls)
}

func TestHandleDelivery_DecrementFailureSkipsOrder(t *testing.T) {
	orders := &MockOrderCommitter{}
	inventory := &MockStockDecrementer{Err: errors.New("db down")}
	rec := newTestReconciler(orders, inventory, &MockBuyerResolver{})

	userID := int64(7)
	items := []domain.CartItem{{ProductID: 1, StoreID: 1, Quantity: 1, Price: 1}}
	body, header := signedDelivery(t, payment.Event{
		ID:          "evt_stock_fail",
		Type:        payment.EventPaymentSucceeded,
		AmountTotal: 100,
		Metadata:    cartMetadataJSON(t, &userID, items),
	})

	err := rec.HandleDelivery(context.Background(), body, header)
	assert.NoError(t, err)
	assert.Zero(t, orders.Calls)
}

func TestHandleDelivery_MultiItemCart(t *testing.T) {
	orders := &MockOrderCommitter{OrderID: 7}
	inventory := &MockStockDecrementer{}
	rec := newTestReconciler(orders, inventory, &MockBuyerResolver{})

	userID := int64(1)
	items := []domain.CartItem{
		{ProductID: 10, StoreID: 1, Quantity: 2, Price: 19.99},
		{ProductID: 11, StoreID: 1, Quantity: 1, Price: 4.5},
		{ProductID: 10, StoreID: 1, Quantity: 1, Price: 19.99},
	}
	body, header := signedDelivery(t, payment.Event{
		ID:          "evt_multi",
		Type:        payment.EventPaymentSucceeded,
		AmountTotal: 6447,
		Metadata:    cartMetadataJSON(t, &userID, items),
	})

	err := rec.HandleDelivery(context.Background(), body, header)
	require.NoError(t, err)

	assert.Equal(t, 3, inventory.Decrements[10])
	assert.Equal(t, 1, inventory.Decrements[11])
	assert.Len(t, orders.CreatedCart, 3)
}
