package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/solaradvisor/solaradvisor/pkg/types"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solaradvisor_http_requests_total",
		Help: "Total number of HTTP requests by method and status code",
	}, []string{"method", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solaradvisor_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solaradvisor_recommendations_total",
		Help: "Completed recommendations by recommended system type",
	}, []string{"system_type"})

	analysisErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solaradvisor_analysis_errors_total",
		Help: "Failed analysis requests by error kind",
	}, []string{"kind"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solaradvisor_analysis_duration_seconds",
		Help:    "Time spent simulating and ranking a single recommendation",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})
)

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		defer func() {
			httpRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.code)).Inc()
			httpRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		}()
		next.ServeHTTP(rec, r)
	})
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, types.ErrValidation):
		return "validation"
	case errors.Is(err, types.ErrDomain):
		return "domain"
	default:
		return "internal"
	}
}
