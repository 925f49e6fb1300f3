package metrics

import (
	"context"

	"github.com/kilianp07/highway/core/events"
	coremetrics "github.com/kilianp07/highway/core/metrics"
	"github.com/kilianp07/highway/infra/logger"
	"github.com/kilianp07/highway/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// events. It stops when the context is canceled or the bus is closed; the
// returned channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe(0)
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Warnf("record %s event: %v", ev.Kind(), err)
				}
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, ev events.Event) error {
	switch e := ev.(type) {
	case events.CommandEvent:
		return sink.RecordCommand(e)
	case events.RouteEvent:
		if r, ok := sink.(coremetrics.RouteRecorder); ok {
			return r.RecordRoute(e)
		}
	case events.IndexEvent:
		if r, ok := sink.(coremetrics.IndexSizeRecorder); ok {
			return r.RecordIndexSize(e.Stations)
		}
	}
	return nil
}
