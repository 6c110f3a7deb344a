package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/payment"
	"storefront-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSessionStarter implements SessionStarter for testing
type MockSessionStarter struct {
	UserID *int64
	Items  []domain.CartItem
	URL    string
	Err    error
}

func (m *MockSessionStarter) CreateSession(_ context.Context, userID *int64, items []domain.CartItem) (string, error) {
	m.UserID = userID
	m.Items = items
	if m.Err != nil {
		return "", m.Err
	}
	return m.URL, nil
}

// MockDeliveryHandler implements DeliveryHandler for testing
type MockDeliveryHandler struct {
	Body      []byte
	Signature string
	Err       error
}

func (m *MockDeliveryHandler) HandleDelivery(_ context.Context, rawBody []byte, signatureHeader string) error {
	m.Body = rawBody
	m.Signature = signatureHeader
	return m.Err
}

func newCheckoutHandler(starter *MockSessionStarter, delivery *MockDeliveryHandler) *CheckoutHandler {
	return NewCheckoutHandler(starter, delivery, zap.NewNop())
}

func withClaims(r *http.Request, claims *auth.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}

func TestCreateSession_ReturnsRedirectURL(t *testing.T) {
	starter := &MockSessionStarter{URL: "https://pay.example.com/cs_1"}
	h := newCheckoutHandler(starter, &MockDeliveryHandler{})

	body := `{"cartItems":[{"productId":1,"storeId":1,"quantity":2,"price":10}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateSession(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://pay.example.com/cs_1")
	require.Len(t, starter.Items, 1)
	assert.Nil(t, starter.UserID, "no token means guest checkout")
}

func TestCreateSession_PinsAuthenticatedUser(t *testing.T) {
	starter := &MockSessionStarter{URL: "https://pay.example.com/cs_2"}
	h := newCheckoutHandler(starter, &MockDeliveryHandler{})

	userID := int64(7)
	body := `{"cartItems":[{"productId":1,"storeId":1,"quantity":1,"price":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(body))
	req = withClaims(req, &auth.Claims{UserID: &userID})
	rec := httptest.NewRecorder()

	h.CreateSession(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, starter.UserID)
	assert.Equal(t, userID, *starter.UserID)
}

func TestCreateSession_RejectsBadPayloads(t *testing.T) {
	for name, body := range map[string]string{
		"invalid json":      `{not json`,
		"empty cart":        `{"cartItems":[]}`,
		"missing product":   `{"cartItems":[{"storeId":1,"quantity":1,"price":5}]}`,
		"zero quantity":     `{"cartItems":[{"productId":1,"storeId":1,"quantity":0,"price":5}]}`,
		"negative price":    `{"cartItems":[{"productId":1,"storeId":1,"quantity":1,"price":-5}]}`,
		"missing cartItems": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			h := newCheckoutHandler(&MockSessionStarter{URL: "unused"}, &MockDeliveryHandler{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(body))
			rec := httptest.NewRecorder()

			h.CreateSession(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateSession_ServiceFailure(t *testing.T) {
	starter := &MockSessionStarter{Err: errors.New("processor down")}
	h := newCheckoutHandler(starter, &MockDeliveryHandler{})

	body := `{"cartItems":[{"productId":1,"storeId":1,"quantity":1,"price":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateSession(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// internal detail must not leak
	assert.NotContains(t, rec.Body.String(), "processor down")
}

func TestCreateSession_EmptyCartFromService(t *testing.T) {
	starter := &MockSessionStarter{Err: service.ErrEmptyCart}
	h := newCheckoutHandler(starter, &MockDeliveryHandler{})

	body := `{"cartItems":[{"productId":1,"storeId":1,"quantity":1,"price":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateSession(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhook_PassesRawBodyAndSignature(t *testing.T) {
	delivery := &MockDeliveryHandler{}
	h := newCheckoutHandler(&MockSessionStarter{}, delivery)

	body := `{"id":"evt_1","type":"payment.succeeded"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/webhook", strings.NewReader(body))
	req.Header.Set(payment.SignatureHeader, "t=1,v1=abc")
	rec := httptest.NewRecorder()

	h.Webhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, body, string(delivery.Body))
	assert.Equal(t, "t=1,v1=abc", delivery.Signature)
}

func TestWebhook_RejectedDelivery(t *testing.T) {
	delivery := &MockDeliveryHandler{Err: payment.ErrBadSignature}
	h := newCheckoutHandler(&MockSessionStarter{}, delivery)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/webhook", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Webhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "signature")
}
