package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "amexan"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// ShopMetrics counts business events. A nil *ShopMetrics records nothing.
type ShopMetrics struct {
	ordersPlaced      prometheus.Counter
	checkoutRetries   prometheus.Counter
	checkoutConflicts prometheus.Counter
	paymentsCaptured  *prometheus.CounterVec
	reviewsSubmitted  prometheus.Counter
}

func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	m := &ShopMetrics{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "orders_placed_total",
			Help:      "Orders created by checkout.",
		}),
		checkoutRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "stock_retries_total",
			Help:      "Checkout attempts restarted because a product's stock changed underneath them.",
		}),
		checkoutConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "conflicts_total",
			Help:      "Checkouts abandoned after exhausting stock retries.",
		}),
		paymentsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "captured_total",
			Help:      "Payments captured, by method.",
		}, []string{"method"}),
		reviewsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reviews",
			Name:      "submitted_total",
			Help:      "Reviews accepted.",
		}),
	}
	reg.MustRegister(m.ordersPlaced, m.checkoutRetries, m.checkoutConflicts, m.paymentsCaptured, m.reviewsSubmitted)
	return m
}

func (m *ShopMetrics) OrderPlaced() {
	if m != nil {
		m.ordersPlaced.Inc()
	}
}

func (m *ShopMetrics) CheckoutRetried() {
	if m != nil {
		m.checkoutRetries.Inc()
	}
}

func (m *ShopMetrics) CheckoutConflicted() {
	if m != nil {
		m.checkoutConflicts.Inc()
	}
}

func (m *ShopMetrics) PaymentCaptured(method string) {
	if m != nil {
		m.paymentsCaptured.WithLabelValues(method).Inc()
	}
}

func (m *ShopMetrics) ReviewSubmitted() {
	if m != nil {
		m.reviewsSubmitted.Inc()
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
