package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus. Metrics are
// registered on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	daysProcessed      *prometheus.CounterVec
	daysFailed         *prometheus.CounterVec
	pairViolations     prometheus.Counter
	summaryRegenerated *prometheus.CounterVec
	jobDuration        *prometheus.HistogramVec
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector. reg defaults to
// prometheus.DefaultRegisterer and namespace to "hris".
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "hris"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.daysProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "attendance",
			Name:      "days_processed_total",
			Help:      "Employee-days computed, by source and resulting status.",
		}, []string{"source", "status"})

		p.daysFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "attendance",
			Name:      "days_failed_total",
			Help:      "Employee-days that could not be computed, by source.",
		}, []string{"source"})

		p.pairViolations = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "attendance",
			Name:      "pair_violations_total",
			Help:      "Session pair ordering violations reported by validation.",
		})

		p.summaryRegenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "summary",
			Name:      "regenerations_total",
			Help:      "Monthly summary regenerations by result (success, failure).",
		}, []string{"result"})

		p.jobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "cron",
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled batch jobs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms .. ~100s
		}, []string{"job"})

		p.reg.MustRegister(p.daysProcessed)
		p.reg.MustRegister(p.daysFailed)
		p.reg.MustRegister(p.pairViolations)
		p.reg.MustRegister(p.summaryRegenerated)
		p.reg.MustRegister(p.jobDuration)
	})
}

func (p *PrometheusCollector) RecordDayProcessed(source, status string) {
	p.ensureRegistered()
	p.daysProcessed.WithLabelValues(source, status).Inc()
}

func (p *PrometheusCollector) RecordDayFailed(source string) {
	p.ensureRegistered()
	p.daysFailed.WithLabelValues(source).Inc()
}

func (p *PrometheusCollector) RecordPairViolations(count int) {
	if count <= 0 {
		return
	}
	p.ensureRegistered()
	p.pairViolations.Add(float64(count))
}

func (p *PrometheusCollector) RecordSummaryRegenerated(result string) {
	p.ensureRegistered()
	p.summaryRegenerated.WithLabelValues(result).Inc()
}

func (p *PrometheusCollector) ObserveJobDuration(job string, seconds float64) {
	p.ensureRegistered()
	p.jobDuration.WithLabelValues(job).Observe(seconds)
}
