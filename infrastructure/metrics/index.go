package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records stage timings of a verification run. The registry is
// private: the job has no scrape endpoint and reports a summary through the
// logger when the run ends.
type Metrics struct {
	Registry *prometheus.Registry

	// Stage latencies by stage name
	StageLatency *prometheus.HistogramVec

	// Run outcomes by terminal state
	RunOutcome *prometheus.CounterVec

	// Stage failures by error kind
	StageFailures *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		StageLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kyc_stage_duration_seconds",
			Help:    "Duration of verification stages",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),

		RunOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_runs_total",
			Help: "Verification runs by terminal state",
		}, []string{"state"}),

		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_stage_failures_total",
			Help: "Failed verification stages by error kind",
		}, []string{"stage", "kind"}),
	}
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementOutcome(state string) {
	if m != nil {
		m.RunOutcome.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) IncrementStageFailure(stage, kind string) {
	if m != nil {
		m.StageFailures.WithLabelValues(stage, kind).Inc()
	}
}

// StageSummary returns the total seconds spent per stage.
func (m *Metrics) StageSummary() (map[string]float64, error) {
	summary := map[string]float64{}
	if m == nil {
		return summary, nil
	}

	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}
	for _, family := range families {
		if family.GetName() != "kyc_stage_duration_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "stage" {
					summary[label.GetValue()] += metric.GetHistogram().GetSampleSum()
				}
			}
		}
	}
	return summary, nil
}
