package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCheckoutService(processor *MockSessionCreator) *CheckoutService {
	return NewCheckoutService(processor, "https://shop.example.com", zap.NewNop(), testMetrics())
}

func TestCreateSession_BuildsLineItems(t *testing.T) {
	processor := &MockSessionCreator{
		Session: &payment.Session{ID: "cs_123", URL: "https://pay.example.com/cs_123"},
	}
	svc := newTestCheckoutService(processor)

	userID := int64(7)
	items := []domain.CartItem{
		{ProductID: 1, StoreID: 1, Quantity: 2, Price: 10, ProductName: "Mug", Image: "mug.png"},
		{ProductID: 2, StoreID: 1, Quantity: 1, Price: 19.999, ProductName: "Shirt"},
	}

	url, err := svc.CreateSession(context.Background(), &userID, items)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_123", url)

	require.Len(t, processor.Params.LineItems, 2)
	first := processor.Params.LineItems[0]
	assert.Equal(t, "Mug", first.Name)
	assert.Equal(t, int64(1000), first.UnitAmount)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "usd", first.Currency)

	// fractional cents round, not truncate
	assert.Equal(t, int64(2000), processor.Params.LineItems[1].UnitAmount)

	assert.Equal(t, "https://shop.example.com/checkout-success", processor.Params.SuccessURL)
	assert.Equal(t, "https://shop.example.com/checkout-cancel", processor.Params.CancelURL)
}

func TestCreateSession_AttachesCartMetadata(t *testing.T) {
	processor := &MockSessionCreator{
		Session: &payment.Session{ID: "cs_meta", URL: "https://pay.example.com/cs_meta"},
	}
	svc := newTestCheckoutService(processor)

	userID := int64(42)
	items := []domain.CartItem{
		{ProductID: 9, StoreID: 3, Quantity: 1, Price: 2.5},
	}

	_, err := svc.CreateSession(context.Background(), &userID, items)
	require.NoError(t, err)

	var meta domain.CartMetadata
	require.NoError(t, json.Unmarshal([]byte(processor.Params.Metadata), &meta))
	assert.Equal(t, domain.CartMetadataVersion, meta.Version)
	require.NotNil(t, meta.UserID)
	assert.Equal(t, int64(42), *meta.UserID)
	require.Len(t, meta.Items, 1)
	assert.Equal(t, int64(9), meta.Items[0].ProductID)
	assert.Equal(t, int64(3), meta.Items[0].StoreID)
}

func TestCreateSession_GuestOmitsUserID(t *testing.T) {
	processor := &MockSessionCreator{
		Session: &payment.Session{ID: "cs_guest", URL: "https://pay.example.com/cs_guest"},
	}
	svc := newTestCheckoutService(processor)

	items := []domain.CartItem{{ProductID: 1, StoreID: 1, Quantity: 1, Price: 1}}
	_, err := svc.CreateSession(context.Background(), nil, items)
	require.NoError(t, err)

	var meta domain.CartMetadata
	require.NoError(t, json.Unmarshal([]byte(processor.Params.Metadata), &meta))
	assert.Nil(t, meta.UserID)
}

func TestCreateSession_EmptyCart(t *testing.T) {
	processor := &MockSessionCreator{}
	svc := newTestCheckoutService(processor)

	_, err := svc.CreateSession(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateSession_ProcessorError(t *testing.T) {
	processor := &MockSessionCreator{Err: errors.New("processor unavailable")}
	svc := newTestCheckoutService(processor)

	items := []domain.CartItem{{ProductID: 1, StoreID: 1, Quantity: 1, Price: 1}}
	_, err := svc.CreateSession(context.Background(), nil, items)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create checkout session")
}
