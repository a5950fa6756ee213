package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExchangeMetrics records outcomes of point redemptions and swap transactions.
type ExchangeMetrics struct {
	duration    *prometheus.HistogramVec
	redemptions prometheus.Counter
	swaps       *prometheus.CounterVec
	failures    *prometheus.CounterVec
	retries     prometheus.Counter
}

// NewExchangeMetrics registers the exchange metrics on the provided registerer.
func NewExchangeMetrics(reg prometheus.Registerer) *ExchangeMetrics {
	if reg == nil {
		return &ExchangeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exchange_tx_duration_seconds",
		Help:    "Duration of exchange transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	redemptions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exchange_redemptions_total",
		Help: "Completed point redemptions.",
	})
	swaps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_swaps_total",
		Help: "Resolved swap proposals by outcome.",
	}, []string{"outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_failures_total",
		Help: "Rejected exchange transactions by reason.",
	}, []string{"reason"})
	retries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exchange_tx_retries_total",
		Help: "Exchange transactions retried after a write conflict.",
	})
	reg.MustRegister(duration, redemptions, swaps, failures, retries)
	return &ExchangeMetrics{
		duration:    duration,
		redemptions: redemptions,
		swaps:       swaps,
		failures:    failures,
		retries:     retries,
	}
}

// ObserveDuration records the duration for the named operation.
func (e *ExchangeMetrics) ObserveDuration(operation string, duration time.Duration) {
	if e == nil || e.duration == nil {
		return
	}
	e.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncRedemption increments the completed redemption counter.
func (e *ExchangeMetrics) IncRedemption() {
	if e == nil || e.redemptions == nil {
		return
	}
	e.redemptions.Inc()
}

// IncSwap increments the resolved swap counter for the given outcome.
func (e *ExchangeMetrics) IncSwap(outcome string) {
	if e == nil || e.swaps == nil {
		return
	}
	e.swaps.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncFailure increments the failure counter for the given reason.
func (e *ExchangeMetrics) IncFailure(reason string) {
	if e == nil || e.failures == nil {
		return
	}
	e.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncRetry increments the conflict-retry counter.
func (e *ExchangeMetrics) IncRetry() {
	if e == nil || e.retries == nil {
		return
	}
	e.retries.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
