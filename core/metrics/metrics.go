package metrics

import "github.com/kilianp07/highway/core/events"

// MetricsSink records command outcomes.
type MetricsSink interface {
	RecordCommand(ev events.CommandEvent) error
}

// RouteRecorder records route query results.
type RouteRecorder interface {
	RecordRoute(ev events.RouteEvent) error
}

// IndexSizeRecorder records the number of stations on the road.
type IndexSizeRecorder interface {
	RecordIndexSize(size int) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordCommand(events.CommandEvent) error { return nil }
func (NopSink) RecordRoute(events.RouteEvent) error     { return nil }
func (NopSink) RecordIndexSize(int) error               { return nil }

// MultiSink fans records out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCommand forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordCommand(ev events.CommandEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCommand(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRoute forwards route events to the sinks that support them.
func (m *MultiSink) RecordRoute(ev events.RouteEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RouteRecorder); ok {
			if err := rec.RecordRoute(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordIndexSize forwards the station count to the sinks that support it.
func (m *MultiSink) RecordIndexSize(size int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(IndexSizeRecorder); ok {
			if err := rec.RecordIndexSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
