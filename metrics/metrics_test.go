package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestShopMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewShopMetrics(reg)

	m.OrderPlaced()
	m.OrderPlaced()
	m.CheckoutRetried()
	m.PaymentCaptured("credit_card")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkoutRetries))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.checkoutConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsCaptured.WithLabelValues("credit_card")))
}

func TestNilShopMetricsIsNoop(t *testing.T) {
	var m *ShopMetrics
	assert.NotPanics(t, func() {
		m.OrderPlaced()
		m.CheckoutRetried()
		m.CheckoutConflicted()
		m.PaymentCaptured("paypal")
		m.ReviewSubmitted()
	})
}
