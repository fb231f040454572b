package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the checkout funnel.
type BusinessMetrics struct {
	// Checkout funnel
	CheckoutStarted *prometheus.CounterVec
	CheckoutStep    *prometheus.CounterVec
	OrdersCreated   *prometheus.CounterVec
	OrderValue      *prometheus.HistogramVec
	OrderItemCount  *prometheus.HistogramVec

	// Phone verification
	OTPSent     *prometheus.CounterVec
	OTPVerified *prometheus.CounterVec
	OTPFailed   *prometheus.CounterVec

	// Coupons
	CouponsApplied  *prometheus.CounterVec
	CouponsRejected *prometheus.CounterVec

	// Leads
	LeadsCaptured  *prometheus.CounterVec
	LeadsConverted *prometheus.CounterVec

	// Cart
	CartUpdated *prometheus.CounterVec
	CartCleared *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "dokan"
	}

	subsystem := "business"

	m := &BusinessMetrics{
		CheckoutStarted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_started_total",
				Help:      "Total checkout sessions started",
			},
			[]string{"source"}, // source: web, app
		),
		CheckoutStep: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_step_total",
				Help:      "Total completions of each checkout step",
			},
			[]string{"step"}, // step: address, payment, confirmation
		),
		OrdersCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total guest orders created",
			},
			[]string{"payment_type"}, // payment_type: partial, full
		),
		OrderValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_bdt",
				Help:      "Order total distribution in taka",
				Buckets:   []float64{250, 500, 1000, 2000, 3500, 5000, 10000, 20000},
			},
			[]string{"payment_type"},
		),
		OrderItemCount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of items per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
			},
			[]string{"payment_type"},
		),

		OTPSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "otp_sent_total",
				Help:      "Total verification codes sent",
			},
			[]string{"kind"}, // kind: initial, resend
		),
		OTPVerified: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "otp_verified_total",
				Help:      "Total successful code verifications",
			},
			[]string{},
		),
		OTPFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "otp_failed_total",
				Help:      "Total failed code verifications",
			},
			[]string{"reason"}, // reason: mismatch, malformed, unavailable
		),

		CouponsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_applied_total",
				Help:      "Total coupons successfully applied",
			},
			[]string{"code"},
		),
		CouponsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_rejected_total",
				Help:      "Total coupon codes rejected",
			},
			[]string{"reason"}, // reason: invalid, unavailable
		),

		LeadsCaptured: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "leads_captured_total",
				Help:      "Total abandoned-checkout leads captured",
			},
			[]string{},
		),
		LeadsConverted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "leads_converted_total",
				Help:      "Total leads converted to orders",
			},
			[]string{},
		),

		CartUpdated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_updated_total",
				Help:      "Total cart update operations",
			},
			[]string{"action"}, // action: add, remove, update_quantity
		),
		CartCleared: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_cleared_total",
				Help:      "Total carts cleared (after purchase or manually)",
			},
			[]string{"reason"}, // reason: purchase, manual
		),
	}

	return m
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
