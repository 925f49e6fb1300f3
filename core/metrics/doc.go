// Package metrics defines the sinks that record highway activity. Every sink
// records command outcomes; sinks may also implement RouteRecorder and
// IndexSizeRecorder. Sinks are created from configuration through the
// factory registry, and NewMetricsSink wraps several of them in a MultiSink.
// Implementations live in infra/metrics.
package metrics
