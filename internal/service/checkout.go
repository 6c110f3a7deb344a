package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/payment"

	"go.uber.org/zap"
)

// SessionCreator is the slice of the payment client the checkout flow needs.
type SessionCreator interface {
	CreateSession(ctx context.Context, params payment.SessionParams) (*payment.Session, error)
}

// CheckoutService turns a cart into a processor-hosted checkout session.
// It persists nothing locally; all durable state waits for the webhook.
type CheckoutService struct {
	processor SessionCreator
	clientURL string
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewCheckoutService(processor SessionCreator, clientURL string, logger *zap.Logger, m *metrics.Metrics) *CheckoutService {
	return &CheckoutService{
		processor: processor,
		clientURL: clientURL,
		logger:    logger,
		metrics:   m,
	}
}

// CreateSession builds processor line items from the cart, attaches the
// original cart as versioned correlation metadata (plus the buyer's user id
// when authenticated), and returns the redirect URL.
func (s *CheckoutService) CreateSession(ctx context.Context, userID *int64, items []domain.CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	lineItems := make([]payment.SessionLineItem, len(items))
	for i, item := range items {
		lineItems[i] = payment.SessionLineItem{
			Name:        item.ProductName,
			Description: item.ProductDescription,
			Image:       item.Image,
			UnitAmount:  toMinorUnits(item.Price),
			Quantity:    item.Quantity,
			Currency:    "usd",
		}
	}

	meta := domain.CartMetadata{
		Version: domain.CartMetadataVersion,
		UserID:  userID,
		Items:   items,
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal cart metadata: %w", err)
	}

	session, err := s.processor.CreateSession(ctx, payment.SessionParams{
		LineItems:  lineItems,
		Metadata:   string(metaJSON),
		SuccessURL: s.clientURL + "/checkout-success",
		CancelURL:  s.clientURL + "/checkout-cancel",
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	s.metrics.CheckoutSessions.Inc()
	s.logger.Info("checkout_session_created",
		zap.String("session_id", session.ID),
		zap.Int("items", len(items)),
	)
	return session.URL, nil
}

// toMinorUnits rounds instead of truncating so $19.999 bills as 2000 cents,
// not 1999.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
