package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-backend/internal/domain"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderCommitter persists a confirmed purchase as one atomic order.
type OrderCommitter interface {
	CreateOrder(ctx context.Context, userID *int64, orderTotal float64, cart []domain.CartItem) (int64, error)
}

// StockDecrementer applies a floor-at-zero decrement per product.
type StockDecrementer interface {
	DecrementStock(ctx context.Context, productID int64, quantity int) (int, error)
}

// BuyerResolver maps a confirmation event to a local account, provisioning
// guest accounts when needed.
type BuyerResolver interface {
	GetOrCreateUserByEmail(ctx context.Context, email, name, placeholderHash string) (*domain.User, error)
}

// PasswordHasher produces the placeholder credential for guest accounts.
type PasswordHasher func(password string) (string, error)

// Reconciler drives a verified payment confirmation through buyer
// resolution, inventory decrement, and order commit. Each delivery walks
// received → verified → user-resolved → inventory-applied → order-committed,
// or stops at rejected when the signature check fails.
type Reconciler struct {
	orders        OrderCommitter
	inventory     StockDecrementer
	users         BuyerResolver
	hashPassword  PasswordHasher
	webhookSecret string
	tolerance     time.Duration
	logger        *zap.Logger
	metrics       *metrics.Metrics
}

func NewReconciler(
	orders OrderCommitter,
	inventory StockDecrementer,
	users BuyerResolver,
	hashPassword PasswordHasher,
	webhookSecret string,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Reconciler {
	return &Reconciler{
		orders:        orders,
		inventory:     inventory,
		users:         users,
		hashPassword:  hashPassword,
		webhookSecret: webhookSecret,
		tolerance:     payment.DefaultTolerance,
		logger:        logger,
		metrics:       m,
	}
}

// HandleDelivery processes one raw webhook delivery. It returns an error
// only when the delivery must be rejected with a 400 (bad signature or a
// body that cannot be decoded at all). Failures past verification are
// logged and swallowed so the processor does not redeliver: redelivery would
// risk duplicate orders, and there is no event dedup. Transient internal
// errors therefore lose the purchase silently; that trade-off is inherited
// deliberately.
func (r *Reconciler) HandleDelivery(ctx context.Context, rawBody []byte, signatureHeader string) error {
	if err := payment.VerifySignature(rawBody, signatureHeader, r.webhookSecret, r.tolerance, time.Now()); err != nil {
		r.metrics.WebhookDeliveries.WithLabelValues(metrics.OutcomeRejected).Inc()
		r.logger.Warn("webhook_signature_rejected", zap.Error(err))
		return err
	}

	var event payment.Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		r.metrics.WebhookDeliveries.WithLabelValues(metrics.OutcomeRejected).Inc()
		r.logger.Warn("webhook_payload_malformed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}

	if event.Type != payment.EventPaymentSucceeded {
		r.metrics.WebhookDeliveries.WithLabelValues(metrics.OutcomeIgnored).Inc()
		r.logger.Info("webhook_event_ignored",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
		return nil
	}

	if err := r.reconcile(ctx, &event); err != nil {
		outcome := metrics.OutcomeAbandoned
		if errors.Is(err, ErrBadMetadata) {
			outcome = metrics.OutcomeBadMetadata
		}
		r.metrics.WebhookDeliveries.WithLabelValues(outcome).Inc()
		r.logger.Error("webhook_reconciliation_abandoned",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return nil
	}

	r.metrics.WebhookDeliveries.WithLabelValues(metrics.OutcomeCommitted).Inc()
	return nil
}

func (r *Reconciler) reconcile(ctx context.Context, event *payment.Event) error {
	meta, err := decodeCartMetadata(event.Metadata)
	if err != nil {
		return err
	}

	userID, err := r.resolveBuyer(ctx, event, meta)
	if err != nil {
		return fmt.Errorf("resolve buyer: %w", err)
	}

	// Each decrement is its own transaction, separate from the order commit
	// below. A crash in between leaves stock applied without an order; the
	// window is narrow and accepted.
	for _, item := range meta.Items {
		if _, err := r.inventory.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("decrement stock for product %d: %w", item.ProductID, err)
		}
	}

	orderID, err := r.orders.CreateOrder(ctx, userID, float64(event.AmountTotal), meta.Items)
	if err != nil {
		return fmt.Errorf("commit order: %w", err)
	}

	r.logger.Info("order_committed",
		zap.Int64("order_id", orderID),
		zap.String("event_id", event.ID),
		zap.Int64("amount_total", event.AmountTotal),
	)
	return nil
}

// resolveBuyer prefers the user id embedded in the correlation metadata.
// Guest checkouts fall back to the email the processor's form captured:
// an existing account wins, otherwise one is provisioned with a placeholder
// credential that only a future password reset can make login-capable.
func (r *Reconciler) resolveBuyer(ctx context.Context, event *payment.Event, meta *domain.CartMetadata) (*int64, error) {
	if meta.UserID != nil {
		return meta.UserID, nil
	}

	if event.CustomerEmail == "" {
		// Nothing to key an account on; the order stays anonymous.
		return nil, nil
	}

	placeholder, err := r.hashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("hash placeholder credential: %w", err)
	}

	user, err := r.users.GetOrCreateUserByEmail(ctx, event.CustomerEmail, event.CustomerName, placeholder)
	if err != nil {
		return nil, err
	}
	return &user.ID, nil
}

func decodeCartMetadata(raw string) (*domain.CartMetadata, error) {
	var meta domain.CartMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMetadata, err)
	}
	if meta.Version != domain.CartMetadataVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadMetadata, meta.Version)
	}
	if len(meta.Items) == 0 {
		return nil, fmt.Errorf("%w: no cart items", ErrBadMetadata)
	}
	return &meta, nil
}
