package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the process-wide instruments. Built once in main and passed
// by reference, never looked up ambiently.
type Metrics struct {
	CheckoutSessions  prometheus.Counter
	WebhookDeliveries *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CheckoutSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_sessions_created_total",
			Help: "Checkout sessions successfully created with the payment processor.",
		}),
		WebhookDeliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_deliveries_total",
				Help: "Payment webhook deliveries by reconciliation outcome.",
			},
			[]string{"outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}
	reg.MustRegister(m.CheckoutSessions, m.WebhookDeliveries, m.RequestDuration)
	return m
}

// Webhook delivery outcomes.
const (
	OutcomeRejected    = "rejected"
	OutcomeIgnored     = "ignored"
	OutcomeCommitted   = "committed"
	OutcomeAbandoned   = "abandoned"
	OutcomeBadMetadata = "bad_metadata"
)
