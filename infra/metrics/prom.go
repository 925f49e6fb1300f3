package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/highway/core/events"
	coremetrics "github.com/kilianp07/highway/core/metrics"
)

// PromSink records highway activity in Prometheus metrics.
type PromSink struct {
	commands *prometheus.CounterVec
	stops    *prometheus.HistogramVec
	duration *prometheus.HistogramVec
	stations prometheus.Gauge
}

// NewPromSink registers the highway metrics on Registry. The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(Registry)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to Registry.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = Registry
	}
	commands, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "highway_commands_total",
		Help: "Highway operations by command and outcome",
	}, []string{"command", "outcome"}))
	if err != nil {
		return nil, err
	}
	stops, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "highway_route_stops",
		Help:    "Number of stops of planned routes",
		Buckets: prometheus.LinearBuckets(1, 1, 16),
	}, []string{"direction"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "highway_route_duration_seconds",
		Help:    "Time spent answering route queries",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"direction", "found"}))
	if err != nil {
		return nil, err
	}
	stations, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "highway_stations",
		Help: "Number of stations on the road",
	}))
	if err != nil {
		return nil, err
	}
	return &PromSink{commands: commands, stops: stops, duration: duration, stations: stations}, nil
}

// register adds c to reg, reusing the collector already registered under the
// same name.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordCommand increments the command counter.
func (s *PromSink) RecordCommand(ev events.CommandEvent) error {
	s.commands.WithLabelValues(ev.Command, ev.Outcome).Inc()
	return nil
}

// RecordRoute observes the stop count of found routes and the query time of
// every route.
func (s *PromSink) RecordRoute(ev events.RouteEvent) error {
	if ev.Found {
		s.stops.WithLabelValues(ev.Direction).Observe(float64(ev.Stops))
	}
	found := "false"
	if ev.Found {
		found = "true"
	}
	s.duration.WithLabelValues(ev.Direction, found).Observe(ev.Duration.Seconds())
	return nil
}

// RecordIndexSize sets the station gauge.
func (s *PromSink) RecordIndexSize(size int) error {
	s.stations.Set(float64(size))
	return nil
}
