// Package highway exposes the station and route operations of the road.
//
// A Highway owns the station index and a planner over it. It is not safe for
// concurrent use; events published on the optional bus are plain values and
// may be consumed from other goroutines.
package highway

import (
	"fmt"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kilianp07/highway/core/events"
	"github.com/kilianp07/highway/core/logger"
	"github.com/kilianp07/highway/core/route"
	"github.com/kilianp07/highway/core/station"
)

// Publisher receives the events emitted by the highway.
type Publisher interface {
	Publish(events.Event)
}

// Options configures a Highway. The zero value is usable.
type Options struct {
	// FleetCapacity bounds the fleet of every station. Zero selects the
	// fleet default.
	FleetCapacity int
	// RouteCache memoizes route answers until the next mutation.
	RouteCache bool
	Bus        Publisher
	Logger     logger.Logger
}

// Highway implements the station lifecycle, vehicle lifecycle and route
// queries.
type Highway struct {
	idx     *station.Index
	planner *route.Planner
	// last is the station most recently looked up by position.
	last *station.Station
	memo *cache.Cache
	bus  Publisher
	log  logger.Logger
	now  func() time.Time
}

type memoEntry struct {
	stops []int
	err   error
}

// New creates an empty highway.
func New(opts Options) *Highway {
	idx := station.NewIndex(opts.FleetCapacity)
	h := &Highway{
		idx:     idx,
		planner: route.NewPlanner(idx),
		bus:     opts.Bus,
		log:     opts.Logger,
		now:     time.Now,
	}
	if h.log == nil {
		h.log = logger.Nop{}
	}
	if opts.RouteCache {
		h.memo = cache.New(cache.NoExpiration, 0)
	}
	return h
}

// Len returns the number of stations.
func (h *Highway) Len() int { return h.idx.Len() }

// Snapshot returns a detached copy of every station in position order.
func (h *Highway) Snapshot() []station.Snapshot { return h.idx.Snapshot() }

// AddStation creates a station at pos seeded with the given vehicle ranges.
func (h *Highway) AddStation(pos int, ranges []int) (station.InsertReport, error) {
	rep, err := h.idx.Insert(pos, ranges...)
	h.command(events.AddStation, pos, err)
	if err != nil {
		h.log.Debugf("add station %d: %v", pos, err)
		return rep, err
	}
	if rep.Dropped > 0 {
		h.log.Debugw("station seeded partially", map[string]any{
			"position": pos,
			"seeded":   rep.Station.Fleet.Len(),
			"dropped":  rep.Dropped,
		})
	}
	h.last = rep.Station
	h.invalidate()
	h.indexChanged()
	return rep, nil
}

// RemoveStation demolishes the station at pos together with its fleet.
func (h *Highway) RemoveStation(pos int) error {
	if h.last != nil && h.last.Position == pos {
		h.last = nil
	}
	err := h.idx.Remove(pos)
	h.command(events.RemoveStation, pos, err)
	if err != nil {
		h.log.Debugf("remove station %d: %v", pos, err)
		return err
	}
	h.invalidate()
	h.indexChanged()
	return nil
}

// AddVehicle parks a vehicle with range rng at the station at pos.
func (h *Highway) AddVehicle(pos, rng int) error {
	err := h.updateFleet(pos, func(s *station.Station) error { return s.Fleet.Add(rng) })
	h.command(events.AddVehicle, pos, err)
	return err
}

// RemoveVehicle scraps one vehicle with range rng from the station at pos.
func (h *Highway) RemoveVehicle(pos, rng int) error {
	err := h.updateFleet(pos, func(s *station.Station) error { return s.Fleet.Remove(rng) })
	h.command(events.RemoveVehicle, pos, err)
	return err
}

// PlanRoute returns the canonical minimum-stop route from origin to dest.
func (h *Highway) PlanRoute(origin, dest int) ([]int, error) {
	start := h.now()
	key := fmt.Sprintf("%d:%d", origin, dest)
	if h.memo != nil {
		if v, ok := h.memo.Get(key); ok {
			e := v.(memoEntry)
			h.routed(origin, dest, e.stops, e.err, true, start)
			return slices.Clone(e.stops), e.err
		}
	}
	stops, err := h.planner.Plan(origin, dest)
	if h.memo != nil {
		h.memo.Set(key, memoEntry{stops: slices.Clone(stops), err: err}, cache.NoExpiration)
	}
	h.routed(origin, dest, stops, err, false, start)
	return stops, err
}

func (h *Highway) updateFleet(pos int, apply func(*station.Station) error) error {
	s, ok := h.lookup(pos)
	if !ok {
		return station.ErrNotFound
	}
	before := s.BestRange()
	if err := apply(s); err != nil {
		h.log.Debugf("station %d fleet: %v", pos, err)
		return err
	}
	if s.BestRange() != before {
		h.invalidate()
	}
	return nil
}

// lookup finds the station at pos, answering repeated operations on the
// same station without walking the index.
func (h *Highway) lookup(pos int) (*station.Station, bool) {
	if h.last != nil && h.last.Position == pos {
		return h.last, true
	}
	s, ok := h.idx.Find(pos)
	if ok {
		h.last = s
	}
	return s, ok
}

func (h *Highway) invalidate() {
	if h.memo != nil {
		h.memo.Flush()
	}
}

func (h *Highway) command(name string, pos int, err error) {
	if h.bus == nil {
		return
	}
	outcome := events.OutcomeOK
	if err != nil {
		outcome = events.OutcomeRejected
	}
	h.bus.Publish(events.CommandEvent{Command: name, Outcome: outcome, Position: pos, Time: h.now()})
}

func (h *Highway) indexChanged() {
	if h.bus == nil {
		return
	}
	h.bus.Publish(events.IndexEvent{Stations: h.idx.Len(), Time: h.now()})
}

func (h *Highway) routed(origin, dest int, stops []int, err error, cached bool, start time.Time) {
	h.command(events.PlanRoute, origin, err)
	if h.bus == nil {
		return
	}
	now := h.now()
	h.bus.Publish(events.RouteEvent{
		Origin:    origin,
		Dest:      dest,
		Direction: route.DirectionOf(origin, dest).String(),
		Stops:     len(stops),
		Found:     err == nil,
		Cached:    cached,
		Duration:  now.Sub(start),
		Time:      now,
	})
}
