// Package metrics holds the Prometheus collectors of the storefront.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	checkouts      *prometheus.CounterVec
	imageFailures  prometheus.Counter
	activeVisitors prometheus.GaugeFunc
	rateLimited    prometheus.Counter
}

// New registers every collector on a private registry. visitors reports
// the number of live sessions.
func New(visitors func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Finished checkouts by outcome.",
		}, []string{"outcome"}),
		imageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_image_fetch_failures_total",
			Help: "Product images that could not be fetched.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}
	if visitors == nil {
		visitors = func() int { return 0 }
	}
	m.activeVisitors = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "storefront_active_visitors",
		Help: "Sessions currently held in memory.",
	}, func() float64 { return float64(visitors()) })

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.checkouts,
		m.imageFailures,
		m.activeVisitors,
		m.rateLimited,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records every request under its chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) CheckoutFinished(outcome string) {
	m.checkouts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ImageFetchFailed() {
	m.imageFailures.Inc()
}

func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}
