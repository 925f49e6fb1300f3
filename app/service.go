package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kilianp07/highway/config"
	"github.com/kilianp07/highway/core/events"
	"github.com/kilianp07/highway/core/highway"
	coremetrics "github.com/kilianp07/highway/core/metrics"
	"github.com/kilianp07/highway/driver"
	"github.com/kilianp07/highway/infra/logger"
	"github.com/kilianp07/highway/infra/metrics"
	"github.com/kilianp07/highway/internal/eventbus"
	"github.com/kilianp07/highway/internal/journal"
)

// Service wires the highway, the driver and the ambient sinks from the
// configuration.
type Service struct {
	Highway *highway.Highway
	Driver  *driver.Driver

	bus      *eventbus.TypedBus[events.Event]
	sink     coremetrics.MetricsSink
	store    journal.Store
	recorder *journal.Recorder
	log      logger.Logger
	promAddr string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Configure(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logg := logger.New("service")

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := journal.Open(cfg.Journal)
	if err != nil {
		closeSink(sink)
		return nil, fmt.Errorf("journal: %w", err)
	}

	svc := &Service{sink: sink, store: store, log: logg, promAddr: cfg.Metrics.PrometheusAddr}
	opts := highway.Options{
		FleetCapacity: cfg.Road.FleetCapacity,
		RouteCache:    cfg.Road.RouteCache,
		Logger:        logger.New("highway"),
	}
	if _, nop := sink.(coremetrics.NopSink); !nop {
		svc.bus = eventbus.NewTyped[events.Event]()
		opts.Bus = svc.bus
	}
	svc.Highway = highway.New(opts)

	dopts := []driver.Option{driver.WithLogger(logger.New("driver"))}
	if store != nil {
		svc.recorder = journal.NewRecorder(store)
		dopts = append(dopts, driver.WithJournal(svc.recorder))
		logg.Infof("journal session %s (%s)", svc.recorder.Session(), cfg.Journal.Backend)
	}
	svc.Driver = driver.New(svc.Highway, dopts...)
	return svc, nil
}

// Session returns the journal session id, or "" when the journal is off.
func (s *Service) Session() string {
	if s.recorder == nil {
		return ""
	}
	return s.recorder.Session()
}

// Run processes the command stream from in, writing replies to out. It is
// meant to be called once per Service. The metrics collector and the
// Prometheus endpoint live for the duration of the call.
func (s *Service) Run(ctx context.Context, in io.Reader, out io.Writer) (driver.Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var collected <-chan struct{}
	if s.bus != nil {
		collected = metrics.StartEventCollector(ctx, s.bus, s.sink)
	}
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	st, err := s.Driver.Run(ctx, in, out)
	if s.bus != nil {
		s.bus.Close()
		<-collected
		if n := s.bus.Dropped(); n > 0 {
			s.log.Warnf("metrics collector dropped %d events", n)
		}
	}
	s.log.Debugw("command stream finished", map[string]any{
		"lines":    st.Lines,
		"replies":  st.Replies,
		"skipped":  st.Skipped,
		"stations": s.Highway.Len(),
	})
	return st, err
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	closeSink(s.sink)
	return errors.Join(errs...)
}

func closeSink(sink coremetrics.MetricsSink) {
	if c, ok := sink.(interface{ Close() }); ok {
		c.Close()
	}
}
