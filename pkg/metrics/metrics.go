package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     prometheus.Gauge
	DBIdleConns     prometheus.Gauge
	DBWaitCount     prometheus.Gauge

	// Домен
	SchedulingOutcomes *prometheus.CounterVec
	ConflictIndexSize  prometheus.Gauge
	LockWaitDuration   *prometheus.HistogramVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: constLabels,
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}),

		DBIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),

		DBWaitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count_total",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		SchedulingOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_outcomes_total",
			Help:        "Scheduling operation outcomes by result (booked, rejection reason or error)",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		ConflictIndexSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "conflict_index_intervals",
			Help:        "Number of occupying intervals held by the in-memory conflict index",
			ConstLabels: constLabels,
		}),

		LockWaitDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "professional_lock_wait_seconds",
			Help:        "Time spent waiting for the per-professional booking lock",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),
	}
}

// ObserveOutcome инкрементирует счётчик исходов операций планирования
func (m *Metrics) ObserveOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.SchedulingOutcomes.WithLabelValues(operation, outcome).Inc()
}

// ObserveLockWait записывает время ожидания блокировки профессионала
func (m *Metrics) ObserveLockWait(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.LockWaitDuration.WithLabelValues(operation).Observe(seconds)
}

// SetConflictIndexSize обновляет gauge размера конфликтного индекса
func (m *Metrics) SetConflictIndexSize(n int) {
	if m == nil {
		return
	}
	m.ConflictIndexSize.Set(float64(n))
}
