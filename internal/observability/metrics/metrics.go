package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead intake flow.
type IntakeMetrics struct {
	requestsTotal   *prometheus.CounterVec
	templateHits    *prometheus.CounterVec
	gatewayFailures prometheus.Counter
	latency         *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadintake",
			Subsystem: "intake",
			Name:      "requests_total",
			Help:      "Total intake webhook requests",
		}, []string{"task_type", "status"}),
		templateHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadintake",
			Subsystem: "intake",
			Name:      "template_hits_total",
			Help:      "Requests short-circuited by a canned template",
		}, []string{"template"}),
		gatewayFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadintake",
			Subsystem: "intake",
			Name:      "gateway_failures_total",
			Help:      "Completion service failures absorbed into canned records",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadintake",
			Subsystem: "intake",
			Name:      "processing_seconds",
			Help:      "Latency of intake pipeline processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"task_type"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.templateHits, m.gatewayFailures, m.latency)
	return m
}

func (m *IntakeMetrics) ObserveRequest(taskType, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(taskType, status).Inc()
}

func (m *IntakeMetrics) ObserveTemplateHit(template string) {
	if m == nil {
		return
	}
	m.templateHits.WithLabelValues(template).Inc()
}

func (m *IntakeMetrics) ObserveGatewayFailure() {
	if m == nil {
		return
	}
	m.gatewayFailures.Inc()
}

func (m *IntakeMetrics) ObserveLatency(taskType string, seconds float64) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(taskType).Observe(seconds)
}
