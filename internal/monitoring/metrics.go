package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Simulation metrics
	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_simulations_total",
			Help: "Total number of strategy simulations run",
		},
		[]string{"strategy"},
	)

	simulationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "backtest_simulation_duration_seconds",
			Help:    "Duration of full four-strategy simulation runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Stage aggregation metrics
	stageJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_stage_jobs_total",
			Help: "Total number of per-stage simulation jobs",
		},
		[]string{"granularity"},
	)

	// Data ingestion metrics
	seriesSamples = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "backtest_series_samples",
			Help: "Number of price samples in the loaded series",
		},
	)

	droppedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backtest_dropped_records_total",
			Help: "Total number of malformed price records dropped during ingestion",
		},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(simulationsTotal)
	prometheus.MustRegister(simulationDuration)
	prometheus.MustRegister(stageJobsTotal)
	prometheus.MustRegister(seriesSamples)
	prometheus.MustRegister(droppedRecordsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordSimulation counts one strategy simulation.
func RecordSimulation(strategy string) {
	simulationsTotal.WithLabelValues(strategy).Inc()
}

// ObserveRunDuration records the wall time of a full four-strategy run.
func ObserveRunDuration(seconds float64) {
	simulationDuration.Observe(seconds)
}

// RecordStageJobs counts per-stage simulation jobs.
func RecordStageJobs(granularity string, count int) {
	stageJobsTotal.WithLabelValues(granularity).Add(float64(count))
}

// SetSeriesSamples records the size of the loaded price series.
func SetSeriesSamples(n int) {
	seriesSamples.Set(float64(n))
}

// RecordDroppedRecords counts malformed ingestion records.
func RecordDroppedRecords(n int) {
	droppedRecordsTotal.Add(float64(n))
}
