package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects benchmark timings into a private Prometheus registry so
// they can be exported as a node_exporter textfile.
type Recorder struct {
	registry *prometheus.Registry
	duration *prometheus.GaugeVec
	speedup  *prometheus.GaugeVec
	workers  prometheus.Gauge
	runs     *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parbench_duration_seconds",
			Help: "Wall-clock duration of the last timed run of a workload.",
		}, []string{"benchmark", "mode"}),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parbench_speedup_ratio",
			Help: "Serial duration divided by parallel duration.",
		}, []string{"benchmark"}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parbench_workers",
			Help: "Worker count used for the parallel workloads.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parbench_runs_total",
			Help: "Number of timed workload runs.",
		}, []string{"benchmark", "mode"}),
	}
	r.registry.MustRegister(r.duration, r.speedup, r.workers, r.runs)
	return r
}

// ObserveDuration records one timed run.
func (r *Recorder) ObserveDuration(benchmark, mode string, seconds float64) {
	r.duration.WithLabelValues(benchmark, mode).Set(seconds)
	r.runs.WithLabelValues(benchmark, mode).Inc()
}

// SetSpeedup records the speedup ratio of a benchmark.
func (r *Recorder) SetSpeedup(benchmark string, ratio float64) {
	r.speedup.WithLabelValues(benchmark).Set(ratio)
}

// SetWorkers records the worker count.
func (r *Recorder) SetWorkers(n int) {
	r.workers.Set(float64(n))
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all collected metrics to path in the Prometheus text
// exposition format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Gatherer())
}
