// Package metrics provides Prometheus metrics for the decision engine
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RoundsTotal counts completed decision rounds.
	RoundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_rounds_total",
		Help: "Completed decision rounds",
	})

	// OrdersEmitted counts emitted orders by product and side.
	OrdersEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_orders_emitted_total",
		Help: "Orders emitted per product and side",
	}, []string{"product", "side"})

	// ConversionSignals counts basket conversion signals by direction.
	ConversionSignals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_conversion_signals_total",
		Help: "Basket conversion signals per product and direction",
	}, []string{"product", "direction"})

	// RoundDuration observes wall time per round.
	RoundDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_round_duration_seconds",
		Help:    "Decision round duration",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	})

	// FairValue tracks the latest resolved fair value per product.
	FairValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "engine_fair_value",
		Help: "Latest resolved fair value",
	}, []string{"product"})

	// QuotedSpread tracks the latest quoted spread per product.
	QuotedSpread = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "engine_quoted_spread",
		Help: "Latest quoted spread width",
	}, []string{"product"})
)

// ObserveRound records one completed round.
func ObserveRound(d time.Duration) {
	RoundsTotal.Inc()
	RoundDuration.Observe(d.Seconds())
}

// RecordOrder counts one emitted order.
func RecordOrder(product, side string) {
	OrdersEmitted.WithLabelValues(product, side).Inc()
}

// RecordConversion counts one conversion signal; positive magnitudes break
// baskets, negative ones assemble them.
func RecordConversion(product string, magnitude int) {
	direction := "break"
	if magnitude < 0 {
		direction = "assemble"
	}
	ConversionSignals.WithLabelValues(product, direction).Inc()
}

// UpdateEstimate publishes the latest fair value and spread for a product.
func UpdateEstimate(product string, fair, spread float64) {
	FairValue.WithLabelValues(product).Set(fair)
	QuotedSpread.WithLabelValues(product).Set(spread)
}

// StartMetricsServer serves /metrics on addr in a background goroutine.
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
