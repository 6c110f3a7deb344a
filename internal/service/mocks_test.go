package service

import (
	"context"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/payment"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// MockOrderCommitter implements OrderCommitter for testing
type MockOrderCommitter struct {
	CreatedUserID *int64
	CreatedTotal  float64
	CreatedCart   []domain.CartItem
	Calls         int
	OrderID       int64
	Err           error
}

func (m *MockOrderCommitter) CreateOrder(_ context.Context, userID *int64, orderTotal float64, cart []domain.CartItem) (int64, error) {
	m.Calls++
	m.CreatedUserID = userID
	m.CreatedTotal = orderTotal
	m.CreatedCart = cart
	if m.Err != nil {
		return 0, m.Err
	}
	return m.OrderID, nil
}

// MockStockDecrementer implements StockDecrementer for testing
type MockStockDecrementer struct {
	Decrements map[int64]int // product id -> total quantity decremented
	Err        error
}

func (m *MockStockDecrementer) DecrementStock(_ context.Context, productID int64, quantity int) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if m.Decrements == nil {
		m.Decrements = make(map[int64]int)
	}
	m.Decrements[productID] += quantity
	return 0, nil
}

// MockBuyerResolver implements BuyerResolver for testing
type MockBuyerResolver struct {
	ResolvedEmail string
	ResolvedName  string
	Calls         int
	User          *domain.User
	Err           error
}

func (m *MockBuyerResolver) GetOrCreateUserByEmail(_ context.Context, email, name, _ string) (*domain.User, error) {
	m.Calls++
	m.ResolvedEmail = email
	m.ResolvedName = name
	if m.Err != nil {
		return nil, m.Err
	}
	return m.User, nil
}

// MockSessionCreator implements SessionCreator for testing
type MockSessionCreator struct {
	Params  payment.SessionParams // captures the params of the last call
	Session *payment.Session
	Err     error
}

func (m *MockSessionCreator) CreateSession(_ context.Context, params payment.SessionParams) (*payment.Session, error) {
	m.Params = params
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func newTestReconciler(orders *MockOrderCommitter, inventory *MockStockDecrementer, users *MockBuyerResolver) *Reconciler {
	hash := func(password string) (string, error) { return "hashed:" + password, nil }
	return NewReconciler(orders, inventory, users, hash, testWebhookSecret, zap.NewNop(), testMetrics())
}
