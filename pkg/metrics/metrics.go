// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор коллекторов сервиса, зарегистрированных в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DBQueriesTotal      *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBTransactionsTotal *prometheus.CounterVec

	BookingValidationsTotal   *prometheus.CounterVec
	BookingConflictRetries    prometheus.Counter
	NotificationFailuresTotal *prometheus.CounterVec
}

// New создает и регистрирует все метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		HTTPRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: constLabels,
		}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		DBTransactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Database transactions by outcome",
			ConstLabels: constLabels,
		}, []string{"isolation", "status"}),

		BookingValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_validations_total",
			Help:        "Booking validation verdicts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		BookingConflictRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflict_retries_total",
			Help:        "Booking writes re-validated after a commit-time conflict",
			ConstLabels: constLabels,
		}),

		NotificationFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_dispatch_failures_total",
			Help:        "Notification and audit records that could not be stored",
			ConstLabels: constLabels,
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTransactionsTotal,
		m.BookingValidationsTotal,
		m.BookingConflictRetries,
		m.NotificationFailuresTotal,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveValidation учитывает результат проверки бронирования
func (m *Metrics) ObserveValidation(outcome string) {
	m.BookingValidationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveConflictRetry учитывает повторную проверку после конфликта при записи
func (m *Metrics) ObserveConflictRetry() {
	m.BookingConflictRetries.Inc()
}

// ObserveDispatchFailure учитывает потерянное уведомление или запись аудита
func (m *Metrics) ObserveDispatchFailure(kind string) {
	m.NotificationFailuresTotal.WithLabelValues(kind).Inc()
}
