package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for report generation.
type Metrics struct {
	ReportsGenerated   *prometheus.CounterVec // labels: source
	ReportErrors       *prometheus.CounterVec // labels: source, kind={load,empty,date,input,other}
	RecordsLoaded      prometheus.Histogram
	GenerationDuration *prometheus.HistogramVec // labels: source
}

// NewMetrics creates the report metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_report",
			Name:      "reports_generated_total",
			Help:      "Reports successfully generated, by source.",
		}, []string{"source"}),
		ReportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_report",
			Name:      "report_errors_total",
			Help:      "Report generation failures by source and kind.",
		}, []string{"source", "kind"}),
		RecordsLoaded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_report",
			Name:      "records_loaded",
			Help:      "Number of daily records per loaded table.",
			Buckets:   []float64{1, 3, 7, 14, 31, 90, 365},
		}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_report",
			Name:      "report_generation_duration_seconds",
			Help:      "Duration of a load-and-render cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.ReportsGenerated,
		m.ReportErrors,
		m.RecordsLoaded,
		m.GenerationDuration,
	)

	return m
}
