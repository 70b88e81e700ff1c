package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SeriesEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosignal_series_evaluated_total",
			Help: "Total number of series evaluated (by variant).",
		},
		[]string{"variant"},
	)

	ObservationsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosignal_observations_total",
			Help: "Total number of bars run through the evaluator (by variant).",
		},
		[]string{"variant"},
	)

	SignalsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosignal_signals_total",
			Help: "Total number of true signal cells (by variant and kind).",
		},
		[]string{"variant", "kind"},
	)

	WarmupObservations = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gosignal_warmup_observations",
			Help: "Bars without a complete indicator set in the last evaluated series.",
		},
		[]string{"variant"},
	)
)

func init() {
	prometheus.MustRegister(SeriesEvaluated, ObservationsProcessed, SignalsEmitted, WarmupObservations)
}

// WriteTextfile dumps the default registry in node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
