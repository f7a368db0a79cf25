package export

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Export results used as metric label values.
const (
	ResultSuccess            = "success"
	ResultGenerateError      = "generate_error"
	ResultSerializationError = "serialization_error"
	ResultStorageError       = "storage_error"
)

// Metrics instruments configuration generation and export.
type Metrics struct {
	exports      *prometheus.CounterVec
	generate     prometheus.Histogram
	lastSuccess  prometheus.Gauge
	exportedSize prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appshell_config_exports_total",
			Help: "Number of configuration exports, differentiated by result.",
		}, []string{"result"}),
		generate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "appshell_config_generate_duration_seconds",
			Help:    "Time spent assembling the app configuration.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), //nolint:mnd
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "appshell_config_last_export_timestamp_seconds",
			Help: "Unix time of the last successful export.",
		}),
		exportedSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "appshell_config_export_size_bytes",
			Help: "Size of the last exported configuration file.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.exports, m.generate, m.lastSuccess, m.exportedSize)
	}

	return m
}

// ObserveGenerate records how long one Generate call took.
func (m *Metrics) ObserveGenerate(d time.Duration) {
	if m == nil {
		return
	}

	m.generate.Observe(d.Seconds())
}

func (m *Metrics) result(result string) {
	if m == nil {
		return
	}

	m.exports.WithLabelValues(result).Inc()
}

func (m *Metrics) success(size int, at time.Time) {
	if m == nil {
		return
	}

	m.exports.WithLabelValues(ResultSuccess).Inc()
	m.lastSuccess.Set(float64(at.Unix()))
	m.exportedSize.Set(float64(size))
}
