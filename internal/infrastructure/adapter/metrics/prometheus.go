package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

const namespace = "imagify"

// Prometheus records business, HTTP, pool and breaker metrics on its own registry
type Prometheus struct {
	registry *prometheus.Registry

	images          *prometheus.CounterVec
	creditsConsumed prometheus.Counter
	paymentsSettled *prometheus.CounterVec
	creditsSold     *prometheus.CounterVec
	registrations   prometheus.Counter

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	poolOpen    prometheus.Gauge
	poolInUse   prometheus.Gauge
	poolIdle    prometheus.Gauge
	poolWaiting prometheus.Gauge

	breakerState *prometheus.GaugeVec
}

// NewPrometheus creates the collectors and registers them with a fresh registry
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),

		images: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "generated_total",
			Help:      "Image generation attempts by outcome.",
		}, []string{"outcome"}),
		creditsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "consumed_total",
			Help:      "Credits spent on generated images.",
		}),
		paymentsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "settled_total",
			Help:      "Verified purchases by plan.",
		}, []string{"plan"}),
		creditsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "purchased_total",
			Help:      "Credits added through purchases by plan.",
		}, []string{"plan"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "registered_total",
			Help:      "Accounts created.",
		}),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms to ~40s
		}, []string{"method", "path"}),

		poolOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db_pool", Name: "open_connections",
			Help: "Open database connections.",
		}),
		poolInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db_pool", Name: "in_use_connections",
			Help: "Database connections in use.",
		}),
		poolIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db_pool", Name: "idle_connections",
			Help: "Idle database connections.",
		}),
		poolWaiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db_pool", Name: "wait_count",
			Help: "Total connections waited for.",
		}),

		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "breaker_state",
			Help:      "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open).",
		}, []string{"name"}),
	}

	p.registry.MustRegister(
		p.images, p.creditsConsumed, p.paymentsSettled, p.creditsSold, p.registrations,
		p.httpInFlight, p.httpRequests, p.httpDuration,
		p.poolOpen, p.poolInUse, p.poolIdle, p.poolWaiting,
		p.breakerState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

var _ core.Metrics = (*Prometheus)(nil)

// ImageGenerated counts a generation attempt
func (p *Prometheus) ImageGenerated(outcome string) {
	p.images.WithLabelValues(outcome).Inc()
}

// CreditsConsumed adds spent credits
func (p *Prometheus) CreditsConsumed(n int64) {
	if n > 0 {
		p.creditsConsumed.Add(float64(n))
	}
}

// PaymentSettled counts a purchase and the credits it added
func (p *Prometheus) PaymentSettled(plan string, credits int64) {
	p.paymentsSettled.WithLabelValues(plan).Inc()
	if credits > 0 {
		p.creditsSold.WithLabelValues(plan).Add(float64(credits))
	}
}

// UserRegistered counts a new account
func (p *Prometheus) UserRegistered() {
	p.registrations.Inc()
}

// RequestStarted tracks an in-flight request; call the returned func when it finishes
func (p *Prometheus) RequestStarted() func() {
	p.httpInFlight.Inc()
	return p.httpInFlight.Dec
}

// ObserveRequest records one finished HTTP request; path is the route template
func (p *Prometheus) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	p.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObservePool copies database pool stats into gauges
func (p *Prometheus) ObservePool(stats sql.DBStats) {
	p.poolOpen.Set(float64(stats.OpenConnections))
	p.poolInUse.Set(float64(stats.InUse))
	p.poolIdle.Set(float64(stats.Idle))
	p.poolWaiting.Set(float64(stats.WaitCount))
}

// ObserveBreaker records a breaker transition
func (p *Prometheus) ObserveBreaker(name string, to gobreaker.State) {
	p.breakerState.WithLabelValues(name).Set(float64(to))
}

// Handler exposes the registry in the text format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
