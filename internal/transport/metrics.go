package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/portfolio/internal/dashboard"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	sourceFailures prometheus.Counter
	matched        prometheus.Gauge
	burnRate       prometheus.Gauge
	statusCounts   *prometheus.GaugeVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		sourceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_source_failures_total",
			Help: "Dashboard views computed over a failed record source",
		}),
		matched: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "portfolio_dashboard_matched_projects",
			Help: "Projects matched by the most recent dashboard view",
		}),
		burnRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "portfolio_dashboard_burn_rate_percent",
			Help: "Burn rate of the most recent dashboard view",
		}),
		statusCounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "portfolio_dashboard_status_projects",
			Help: "Matched projects per status in the most recent dashboard view",
		}, []string{"status"}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.sourceFailures, m.matched, m.burnRate, m.statusCounts)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Middleware records request counts and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveView updates the dashboard gauges from a computed view.
func (m *Metrics) ObserveView(view dashboard.View) {
	if view.Error != "" {
		m.sourceFailures.Inc()
	}
	m.matched.Set(float64(view.Matched))
	m.burnRate.Set(float64(view.Summary.KPIs.BurnRate))
	for _, sc := range view.Summary.Charts.StatusBreakdown {
		m.statusCounts.WithLabelValues(string(sc.Status)).Set(float64(sc.Count))
	}
}
