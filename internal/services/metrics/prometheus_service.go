package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	cacheSubsystem   = "report_cache"
	cacheOpPrefix    = "cache_"
	unknownResult    = "unknown"
	minCacheBucket   = 0.0005
	cacheBucketCount = 12
)

// PromCollector exports report cache traffic. Operations arrive as
// "cache_get"/"cache_set" and are exported as "get"/"set".
type PromCollector struct {
	latency *prometheus.HistogramVec
	results *prometheus.CounterVec
}

func NewPromCollector(reg prometheus.Registerer, namespace string) *PromCollector {
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_duration_seconds",
			Help:      "Time spent reading or writing cached lookup reports in Redis",
			// Redis round trips sit well below the default buckets.
			Buckets: prometheus.ExponentialBuckets(minCacheBucket, 2, cacheBucketCount),
		},
		[]string{"operation"},
	)
	results := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: cacheSubsystem,
			Name:      "operations_total",
			Help:      "Cached lookup report reads (hit, miss, error) and writes (success, error)",
		},
		[]string{"operation", "result"},
	)
	reg.MustRegister(latency, results)
	return &PromCollector{latency: latency, results: results}
}

func (p *PromCollector) ObserveLatency(op string, d time.Duration) {
	p.latency.WithLabelValues(operation(op)).Observe(d.Seconds())
}

// IncrementCounter counts one result of op; only the first label is used.
func (p *PromCollector) IncrementCounter(op string, labels ...string) {
	result := unknownResult
	if len(labels) > 0 && labels[0] != "" {
		result = labels[0]
	}
	p.results.WithLabelValues(operation(op), result).Inc()
}

func operation(op string) string {
	return strings.TrimPrefix(op, cacheOpPrefix)
}
