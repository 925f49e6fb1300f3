package events

import "time"

// Event is implemented by every value published by the highway.
type Event interface {
	Kind() string
}

// Command names used in CommandEvent.
const (
	AddStation    = "add_station"
	RemoveStation = "remove_station"
	AddVehicle    = "add_vehicle"
	RemoveVehicle = "remove_vehicle"
	PlanRoute     = "plan_route"
)

// Outcomes used in CommandEvent.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// CommandEvent is published once per highway operation.
type CommandEvent struct {
	Command  string
	Outcome  string
	Position int
	Time     time.Time
}

func (CommandEvent) Kind() string { return "command" }

// RouteEvent describes a completed route query. Stops is zero when no route
// exists.
type RouteEvent struct {
	Origin    int
	Dest      int
	Direction string
	Stops     int
	Found     bool
	Cached    bool
	Duration  time.Duration
	Time      time.Time
}

func (RouteEvent) Kind() string { return "route" }

// IndexEvent carries the number of stations after a station was added or
// removed.
type IndexEvent struct {
	Stations int
	Time     time.Time
}

func (IndexEvent) Kind() string { return "index" }
