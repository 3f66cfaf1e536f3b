package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	repositoryCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_call_duration_seconds",
			Help:      "Repository call duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "result"},
	)

	breakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "repository_breaker_state",
			Help:      "Repository circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	resultSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_result_size",
			Help:      "Number of stores returned by discovery queries",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"query"},
	)
)

func init() {
	prometheus.MustRegister(repositoryCallDuration)
	prometheus.MustRegister(breakerState)
	prometheus.MustRegister(resultSize)
}

// ObserveRepositoryCall records one repository call under a result label such as "ok" or "error".
func ObserveRepositoryCall(operation, result string, elapsed time.Duration) {
	repositoryCallDuration.WithLabelValues(operation, result).Observe(elapsed.Seconds())
}

// SetBreakerState publishes the numeric state of the named breaker.
func SetBreakerState(name string, state float64) {
	breakerState.WithLabelValues(name).Set(state)
}

// ObserveResultSize records how many stores a discovery query returned.
func ObserveResultSize(query string, n int) {
	resultSize.WithLabelValues(query).Observe(float64(n))
}
