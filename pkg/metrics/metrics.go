package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	DepositQuotesTotal    *prometheus.CounterVec
	AssignmentsTotal      *prometheus.CounterVec
	InsightFallbacksTotal *prometheus.CounterVec
	SettingsCacheLookups  *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry позволяет передать собственный registry (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"service", "method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "method", "route"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "db_query_duration_seconds",
				Help:      "Database query latency.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "db_query_errors_total",
				Help:      "Database query errors.",
			},
			[]string{"service", "operation"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "db_open_connections",
				Help:      "Number of established connections.",
			},
			[]string{"service"},
		),
		DBInUseConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "db_in_use_connections",
				Help:      "Number of connections currently in use.",
			},
			[]string{"service"},
		),
		DBIdleConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "db_idle_connections",
				Help:      "Number of idle connections.",
			},
			[]string{"service"},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "db_wait_count",
				Help:      "Total number of connections waited for.",
			},
			[]string{"service"},
		),
		DepositQuotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "deposit_quotes_total",
				Help:      "Deposit quotes computed, by whether payment is required.",
			},
			[]string{"required"},
		),
		AssignmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "table_assignments_total",
				Help:      "Table assignment attempts by outcome.",
			},
			[]string{"outcome"},
		),
		InsightFallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "insight_fallbacks_total",
				Help:      "Dashboard insight requests that degraded to a fallback message.",
			},
			[]string{"reason"},
		),
		SettingsCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "settings_cache_lookups_total",
				Help:      "Settings cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DepositQuotesTotal,
		m.AssignmentsTotal,
		m.InsightFallbacksTotal,
		m.SettingsCacheLookups,
	)

	return m
}

// ObserveHTTPRequest учитывает HTTP запрос. route - шаблон маршрута, а не фактический путь.
func (m *Metrics) ObserveHTTPRequest(serviceName, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(serviceName, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(serviceName, method, route).Observe(duration.Seconds())
}

// IncDepositQuote учитывает расчет депозита
func (m *Metrics) IncDepositQuote(required bool) {
	if m == nil {
		return
	}
	label := "false"
	if required {
		label = "true"
	}
	m.DepositQuotesTotal.WithLabelValues(label).Inc()
}

// IncAssignment учитывает попытку посадки: assigned, conflict, error
func (m *Metrics) IncAssignment(outcome string) {
	if m == nil {
		return
	}
	m.AssignmentsTotal.WithLabelValues(outcome).Inc()
}

// IncInsightFallback учитывает деградацию генерации подсказок
func (m *Metrics) IncInsightFallback(reason string) {
	if m == nil {
		return
	}
	m.InsightFallbacksTotal.WithLabelValues(reason).Inc()
}

// IncSettingsCache учитывает hit/miss/error кэша настроек
func (m *Metrics) IncSettingsCache(result string) {
	if m == nil {
		return
	}
	m.SettingsCacheLookups.WithLabelValues(result).Inc()
}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}
