package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	EvidenceSubmissions prometheus.Counter
	RiskTransitions     prometheus.Counter
	DSRTransitions      prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grc_http_requests_total",
			Help: "Total HTTP requests by method and status code",
		}, []string{"method", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grc_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		EvidenceSubmissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grc_evidence_submissions_total",
			Help: "Total control evidence submissions recorded",
		}),
		RiskTransitions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grc_risk_transitions_total",
			Help: "Total risk status transitions applied",
		}),
		DSRTransitions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grc_dsr_transitions_total",
			Help: "Total data subject request status transitions applied",
		}),
	}
}
