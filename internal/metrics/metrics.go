package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// label values for OrdersTotal and UpgradesTotal
const (
	ResultCreated = "created"
	ResultFailed  = "failed"

	OutcomeApplied          = "applied"
	OutcomeReplayed         = "replayed"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeInvalidRequest   = "invalid_request"
	OutcomeFailed           = "failed"
)

// holds every collector the billing service exports
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	OrdersTotal         *prometheus.CounterVec
	GatewayDuration     prometheus.Histogram
	UpgradesTotal       *prometheus.CounterVec
	CreditsGrantedTotal *prometheus.CounterVec
	LedgerFailuresTotal prometheus.Counter
	UsageChecksTotal    *prometheus.CounterVec
	UsageRecordsTotal   prometheus.Counter
	StoreFailuresTotal  *prometheus.CounterVec
	LockWaitDuration    prometheus.Histogram
}

// creates the collectors and registers them on registry
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_billing_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inkwell_billing_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		OrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_billing_orders_total",
				Help: "Gateway order creation attempts by result",
			},
			[]string{"result"},
		),
		GatewayDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "inkwell_billing_gateway_duration_seconds",
				Help:    "Payment gateway call duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		UpgradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_billing_upgrades_total",
				Help: "verify_payment attempts by outcome",
			},
			[]string{"outcome"},
		),
		CreditsGrantedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_billing_credits_granted_total",
				Help: "Credits added to account ceilings by plan",
			},
			[]string{"plan"},
		),
		LedgerFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inkwell_billing_ledger_write_failures_total",
				Help: "Payment ledger appends that failed after a credit grant",
			},
		),
		UsageChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_billing_usage_checks_total",
				Help: "Usage computations by resulting band",
			},
			[]string{"band"},
		),
		UsageRecordsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inkwell_billing_usage_records_total",
				Help: "Usage records appended",
			},
		),
		StoreFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_billing_store_failures_total",
				Help: "Data store failures by operation",
			},
			[]string{"operation"},
		),
		LockWaitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "inkwell_billing_owner_lock_wait_seconds",
				Help:    "Time spent waiting for the per-owner upgrade lock",
				Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 5},
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersTotal,
		m.GatewayDuration,
		m.UpgradesTotal,
		m.CreditsGrantedTotal,
		m.LedgerFailuresTotal,
		m.UsageChecksTotal,
		m.UsageRecordsTotal,
		m.StoreFailuresTotal,
		m.LockWaitDuration,
	)

	return m
}

// metrics bound to a throwaway registry, for tests and tools
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// records request count and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// exposes the registry in the Prometheus text format
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
