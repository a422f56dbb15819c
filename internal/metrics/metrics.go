package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tax-engine/internal/deadlines"
	"tax-engine/internal/model"
)

const namespace = "tax_engine"

// Metrics holds the service's collectors on a private registry so tests and
// multiple servers in one process never collide.
type Metrics struct {
	registry *prometheus.Registry

	calculations *prometheus.CounterVec
	messages     *prometheus.CounterVec
	requests     *prometheus.CounterVec
	duration     prometheus.Histogram
	deadlines    *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Tax calculations by income type, method and outcome.",
		}, []string{"income_type", "method", "outcome"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_messages_total",
			Help:      "Validation messages reported at the input boundary.",
		}, []string{"level", "code"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent in validation and computation.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
		deadlines: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deadline_days_remaining",
			Help:      "Days until each filing deadline next falls due.",
		}, []string{"id", "category"}),
	}
	m.registry.MustRegister(m.calculations, m.messages, m.requests, m.duration, m.deadlines)
	return m
}

// ObserveCalculation records one processed request.
func (m *Metrics) ObserveCalculation(req *model.CalculationRequest, resp *model.CalculationResponse, took time.Duration) {
	method := string(model.MethodNone)
	if resp.CalculationResult != nil {
		method = string(resp.CalculationResult.MethodUsed)
	}
	m.calculations.WithLabelValues(req.IncomeType, method, resp.CalculationMetadata.CalculationOutcome).Inc()
	for _, msg := range resp.Messages {
		m.messages.WithLabelValues(msg.Level, msg.Code).Inc()
	}
	m.duration.Observe(took.Seconds())
}

func (m *Metrics) ObserveRequest(route string, status int) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// SetDeadlines replaces the deadline gauges with reminders.
func (m *Metrics) SetDeadlines(reminders []deadlines.Reminder) {
	m.deadlines.Reset()
	for _, r := range reminders {
		m.deadlines.WithLabelValues(r.ID, r.Category).Set(float64(r.DaysRemaining))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
