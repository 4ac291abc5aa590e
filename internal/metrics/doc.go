// Package metrics collects runtime memory statistics and benchmark timings.
//
// MemoryCollector snapshots runtime.MemStats around a run. Recorder keeps
// Prometheus gauges in a private registry and writes them in the text
// exposition format for the node_exporter textfile collector.
package metrics
