package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "natal_chart"

// ChartMetrics holds Prometheus collectors for chart computation.
// All methods are safe on a nil receiver so callers need no guard.
type ChartMetrics struct {
	chartsComputed  *prometheus.CounterVec
	chartFailures   *prometheus.CounterVec
	computeDuration *prometheus.HistogramVec
	stepDuration    *prometheus.HistogramVec
	rendersTotal    prometheus.Counter
	providerCalls   *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	ready           prometheus.Gauge
}

// NewChartMetrics creates the collectors and registers them with reg.
func NewChartMetrics(reg prometheus.Registerer) (*ChartMetrics, error) {
	m := &ChartMetrics{
		chartsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "charts_computed_total",
			Help:      "Charts computed successfully.",
		}, []string{"provider", "house_system", "zodiac"}),
		chartFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chart_failures_total",
			Help:      "Charts that failed, by pipeline step.",
		}, []string{"provider", "step"}),
		computeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "chart_compute_duration_seconds",
			Help:      "Wall time of one chart computation.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"provider"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "chart_step_duration_seconds",
			Help:      "Wall time of each chart pipeline step.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"step"}),
		rendersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "wheels_rendered_total",
			Help:      "Chart wheels rendered.",
		}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ephemeris_calls_total",
			Help:      "Ephemeris provider calls by operation and outcome.",
		}, []string{"provider", "operation", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ephemeris_cache_lookups_total",
			Help:      "Remote ephemeris cache lookups by result.",
		}, []string{"result"}),
		ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "ephemeris_ready",
			Help:      "1 once the ephemeris provider finished initializing.",
		}),
	}

	collectors := []prometheus.Collector{
		m.chartsComputed, m.chartFailures, m.computeDuration, m.stepDuration,
		m.rendersTotal, m.providerCalls, m.cacheLookups, m.ready,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ChartComputed records a successful chart.
func (m *ChartMetrics) ChartComputed(provider, houseSystem, zodiac string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.chartsComputed.WithLabelValues(provider, houseSystem, zodiac).Inc()
	m.computeDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ChartFailed records a chart that failed at step.
func (m *ChartMetrics) ChartFailed(provider, step string) {
	if m == nil {
		return
	}

	m.chartFailures.WithLabelValues(provider, step).Inc()
}

// StepObserved records the duration of one pipeline step.
func (m *ChartMetrics) StepObserved(step string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.stepDuration.WithLabelValues(step).Observe(elapsed.Seconds())
}

// WheelRendered counts one rendered wheel.
func (m *ChartMetrics) WheelRendered() {
	if m == nil {
		return
	}

	m.rendersTotal.Inc()
}

// ProviderCall counts one ephemeris call.
func (m *ChartMetrics) ProviderCall(provider, operation string, err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	m.providerCalls.WithLabelValues(provider, operation, outcome).Inc()
}

// CacheLookup counts a remote ephemeris cache hit or miss.
func (m *ChartMetrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	m.cacheLookups.WithLabelValues(result).Inc()
}

// SetReady exports the readiness gate state.
func (m *ChartMetrics) SetReady(ready bool) {
	if m == nil {
		return
	}

	if ready {
		m.ready.Set(1)
	} else {
		m.ready.Set(0)
	}
}
