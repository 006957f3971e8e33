// Package metrics exposes Prometheus collectors for the auth service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"authcore/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var breakerStates = []string{"closed", "half-open", "open"}

// Registry owns every collector so tests can build isolated instances.
type Registry struct {
	registry *prometheus.Registry

	loginAttempts      *prometheus.CounterVec
	registrations      *prometheus.CounterVec
	fatalInconsistency prometheus.Counter
	sessionsSwept      prometheus.Counter
	breakerState       *prometheus.GaugeVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registers the service collectors plus the Go and process collectors.
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Registration saga outcomes.",
		}, []string{"outcome"}),
		fatalInconsistency: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_registration_fatal_inconsistency_total",
			Help: "Registrations whose compensating delete could not be confirmed.",
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_refresh_tokens_swept_total",
			Help: "Expired refresh tokens removed by the sweeper.",
		}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "auth_circuit_breaker_state",
			Help: "1 for the current state of each circuit breaker.",
		}, []string{"breaker", "state"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.loginAttempts,
		r.registrations,
		r.fatalInconsistency,
		r.sessionsSwept,
		r.breakerState,
		r.httpRequestsTotal,
		r.httpRequestDuration,
	)

	return r
}

// NewAuthMetrics adapts the registry to the domain metrics port for fx.
func NewAuthMetrics(r *Registry) service.AuthMetrics {
	return r
}

func (r *Registry) LoginAttempt(result string) {
	r.loginAttempts.WithLabelValues(result).Inc()
}

func (r *Registry) RegistrationOutcome(outcome string) {
	r.registrations.WithLabelValues(outcome).Inc()
}

func (r *Registry) FatalInconsistency() {
	r.fatalInconsistency.Inc()
}

func (r *Registry) SessionsSwept(count int64) {
	if count > 0 {
		r.sessionsSwept.Add(float64(count))
	}
}

// BreakerState sets the gauge for state to 1 and every other state to 0.
func (r *Registry) BreakerState(name string, state string) {
	for _, s := range breakerStates {
		v := 0.0
		if s == state {
			v = 1
		}
		r.breakerState.WithLabelValues(name, s).Set(v)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency by route template.
func (r *Registry) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		labels := []string{c.Request().Method, c.Path(), strconv.Itoa(status)}

		r.httpRequestsTotal.WithLabelValues(labels...).Inc()
		r.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}
