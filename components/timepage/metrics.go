package timepage

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeRendered = "rendered"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Metrics counts time page requests by outcome and records their latency.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests metrics.Counter
	latency  metrics.Histogram
}

// NewMetrics registers the collectors on reg. Use a fresh registry in tests;
// registering twice on the same registry fails.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "time",
		Name:      "request_count",
		Help:      "Number of time page requests by outcome.",
	}, []string{"outcome", "code"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "time",
		Name:      "request_latency_seconds",
		Help:      "Time spent serving time page requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	if err := reg.Register(requests); err != nil {
		return nil, fmt.Errorf("timepage: register request counter: %w", err)
	}
	if err := reg.Register(latency); err != nil {
		return nil, fmt.Errorf("timepage: register latency histogram: %w", err)
	}

	return &Metrics{
		requests: kitprometheus.NewCounter(requests),
		latency:  kitprometheus.NewHistogram(latency),
	}, nil
}

func (m *Metrics) observe(code int, began time.Time) {
	if m == nil {
		return
	}
	outcome := outcomeFor(code)
	m.requests.With("outcome", outcome, "code", strconv.Itoa(code)).Add(1)
	m.latency.With("outcome", outcome).Observe(time.Since(began).Seconds())
}

func outcomeFor(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return outcomeFailed
	case code >= http.StatusBadRequest:
		return outcomeRejected
	default:
		return outcomeRendered
	}
}

// Instrument wraps next so every response is counted by status.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.observe(status, began)
	})
}
