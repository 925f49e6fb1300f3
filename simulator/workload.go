// Package simulator generates synthetic command streams for load and
// regression runs of the highway driver.
package simulator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strconv"
	"strings"

	"github.com/kilianp07/highway/core/fleet"
	"github.com/kilianp07/highway/driver"
)

// Config holds parameters for workload generation.
type Config struct {
	Seed        int64   `json:"seed"`
	Commands    int     `json:"commands" validate:"gte=1"`
	Span        int     `json:"span" validate:"gte=1,lte=2147483647"`
	MaxRange    int     `json:"max_range" validate:"gte=1,lte=2147483647"`
	MaxVehicles int     `json:"max_vehicles" validate:"gte=0"`
	PlanRatio   float64 `json:"plan_ratio" validate:"gte=0,lte=1"`
	// FleetCapacity mirrors road.fleet_capacity; 0 selects the fleet default.
	FleetCapacity int `json:"fleet_capacity" validate:"gte=0"`
}

// DefaultConfig returns a small, route-heavy workload.
func DefaultConfig() Config {
	return Config{
		Seed:        1,
		Commands:    1000,
		Span:        10000,
		MaxRange:    500,
		MaxVehicles: 8,
		PlanRatio:   0.4,
	}
}

// Generator produces command lines while tracking which stations and
// vehicles exist, so most commands it emits are accepted.
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	stations map[int][]int
	order    []int
}

func NewGenerator(cfg Config) *Generator {
	if cfg.Span <= 0 {
		cfg.Span = 1
	}
	if cfg.MaxRange <= 0 {
		cfg.MaxRange = 1
	}
	if cfg.FleetCapacity <= 0 {
		cfg.FleetCapacity = fleet.DefaultCapacity
	}
	return &Generator{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		stations: make(map[int][]int),
	}
}

// Next returns the next command line.
func (g *Generator) Next() string {
	if len(g.order) < 2 {
		return g.addStation()
	}
	if g.rng.Float64() < g.cfg.PlanRatio {
		return g.planRoute()
	}
	switch g.rng.Intn(10) {
	case 0, 1, 2:
		return g.addStation()
	case 3:
		return g.removeStation()
	case 4, 5, 6:
		return g.addVehicle()
	default:
		return g.removeVehicle()
	}
}

// Write emits cfg.Commands lines to w.
func (g *Generator) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < g.cfg.Commands; i++ {
		if _, err := bw.WriteString(g.Next() + "\n"); err != nil {
			return fmt.Errorf("write command %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

func (g *Generator) addStation() string {
	pos := g.rng.Intn(g.cfg.Span)
	n := g.rng.Intn(g.cfg.MaxVehicles + 1)
	ranges := make([]int, n)
	for i := range ranges {
		ranges[i] = g.rng.Intn(g.cfg.MaxRange)
	}
	if _, ok := g.stations[pos]; !ok {
		g.stations[pos] = slices.Clone(ranges[:min(n, g.cfg.FleetCapacity)])
		i, _ := slices.BinarySearch(g.order, pos)
		g.order = slices.Insert(g.order, i, pos)
	}
	return line(driver.CmdAddStation, append([]int{pos, n}, ranges...)...)
}

func (g *Generator) removeStation() string {
	i := g.rng.Intn(len(g.order))
	pos := g.order[i]
	g.order = slices.Delete(g.order, i, i+1)
	delete(g.stations, pos)
	return line(driver.CmdRemoveStation, pos)
}

func (g *Generator) addVehicle() string {
	pos := g.pick()
	r := g.rng.Intn(g.cfg.MaxRange)
	if len(g.stations[pos]) < g.cfg.FleetCapacity {
		g.stations[pos] = append(g.stations[pos], r)
	}
	return line(driver.CmdAddVehicle, pos, r)
}

func (g *Generator) removeVehicle() string {
	pos := g.pick()
	parked := g.stations[pos]
	if len(parked) == 0 {
		return line(driver.CmdRemoveVehicle, pos, g.rng.Intn(g.cfg.MaxRange))
	}
	i := g.rng.Intn(len(parked))
	r := parked[i]
	g.stations[pos] = slices.Delete(parked, i, i+1)
	return line(driver.CmdRemoveVehicle, pos, r)
}

func (g *Generator) planRoute() string {
	return line(driver.CmdPlanRoute, g.pick(), g.pick())
}

func (g *Generator) pick() int {
	return g.order[g.rng.Intn(len(g.order))]
}

func line(cmd string, args ...int) string {
	var b strings.Builder
	b.WriteString(cmd)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}
