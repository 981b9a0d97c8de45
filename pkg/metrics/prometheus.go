package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	diagnostics    *prometheus.CounterVec
	sinkErrors     *prometheus.CounterVec
	pageRenders    *prometheus.CounterVec
	totalLiquidity prometheus.Gauge
	averageRisk    prometheus.Gauge
}

// NewWithRegisterer creates a recorder registered on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		diagnostics: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugguard_diagnostics_total",
				Help: "Total number of diagnostic messages emitted",
			},
			[]string{"kind"},
		),
		sinkErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugguard_sink_errors_total",
				Help: "Total number of diagnostic sink delivery failures",
			},
			[]string{"sink"},
		),
		pageRenders: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugguard_page_renders_total",
				Help: "Total number of rendered dashboard pages",
			},
			[]string{"page"},
		),
		totalLiquidity: f.NewGauge(prometheus.GaugeOpts{
			Name: "rugguard_analytics_total_liquidity",
			Help: "Total liquidity from the last analytics snapshot",
		}),
		averageRisk: f.NewGauge(prometheus.GaugeOpts{
			Name: "rugguard_analytics_average_risk_score",
			Help: "Average risk score from the last analytics snapshot",
		}),
	}
}

// RecordDiagnostic counts an emitted diagnostic.
func (r *Recorder) RecordDiagnostic(kind string) {
	r.diagnostics.WithLabelValues(kind).Inc()
}

// RecordSinkError counts a failed delivery to a sink.
func (r *Recorder) RecordSinkError(sink string) {
	r.sinkErrors.WithLabelValues(sink).Inc()
}

// RecordPageRender counts a rendered page.
func (r *Recorder) RecordPageRender(page string) {
	r.pageRenders.WithLabelValues(page).Inc()
}

// RecordAnalytics publishes the latest aggregate values.
func (r *Recorder) RecordAnalytics(totalLiquidity, averageRisk float64) {
	r.totalLiquidity.Set(totalLiquidity)
	r.averageRisk.Set(averageRisk)
}
