// Package metrics holds the Prometheus instrumentation for the verifier.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	verificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_verifier_verifications_total",
			Help: "Completed verifications by outcome (ok, degraded, error, invalid).",
		},
		[]string{"outcome"},
	)

	verificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "token_verifier_verification_duration_seconds",
			Help:    "Wall-clock duration of full verification calls.",
			Buckets: prometheus.DefBuckets,
		},
	)

	cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "token_verifier_cache_hits_total",
		Help: "Verification cache hits.",
	})

	cacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "token_verifier_cache_misses_total",
		Help: "Verification cache misses (including lazy TTL evictions).",
	})

	collaboratorErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_verifier_collaborator_errors_total",
			Help: "Failed collaborator calls by kind (rpc, explorer).",
		},
		[]string{"kind"},
	)

	gasPriceGwei = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "token_verifier_gas_price_gwei",
			Help: "Last fetched gas price per chain, in gwei.",
		},
		[]string{"chain"},
	)
)

// MustRegisterMetrics registers every collector with the default registry.
// Call once from main before serving /metrics.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		verificationsTotal,
		verificationDuration,
		cacheHitsTotal,
		cacheMissesTotal,
		collaboratorErrorsTotal,
		gasPriceGwei,
	)
}

// IncVerification counts one completed verification by outcome.
func IncVerification(outcome string) {
	verificationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveVerificationDuration records the duration of one verification.
func ObserveVerificationDuration(d time.Duration) {
	verificationDuration.Observe(d.Seconds())
}

// IncCacheHit counts one verification cache hit.
func IncCacheHit() { cacheHitsTotal.Inc() }

// IncCacheMiss counts one verification cache miss.
func IncCacheMiss() { cacheMissesTotal.Inc() }

// IncCollaboratorError counts one failed RPC or explorer call.
func IncCollaboratorError(kind string) {
	collaboratorErrorsTotal.WithLabelValues(kind).Inc()
}

// SetGasPrice publishes the latest gas price for a chain.
func SetGasPrice(chainIdentifier string, gwei float64) {
	gasPriceGwei.WithLabelValues(chainIdentifier).Set(gwei)
}
