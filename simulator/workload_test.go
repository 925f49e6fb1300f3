package simulator

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/highway/core/highway"
	"github.com/kilianp07/highway/driver"
)

func generate(t *testing.T, cfg Config) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewGenerator(cfg).Write(&buf))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestGeneratorDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Commands = 200
	a, b := generate(t, cfg), generate(t, cfg)
	assert.Equal(t, a, b)
	assert.Len(t, a, 200)

	cfg.Seed = 2
	assert.NotEqual(t, a, generate(t, cfg))
}

func TestGeneratorStartsWithStations(t *testing.T) {
	lines := generate(t, Config{Seed: 3, Commands: 2, Span: 100, MaxRange: 10})
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, driver.CmdAddStation+" "), l)
	}
}

func TestGeneratedCommandsAreWellFormed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Commands = 2000
	d := driver.New(highway.New(highway.Options{}))
	replies := map[string]int{}
	for _, l := range generate(t, cfg) {
		reply, ok := d.Exec(context.Background(), l)
		require.True(t, ok, "no reply for %q", l)
		replies[reply]++
	}
	assert.Zero(t, replies[driver.ReplyNotRemoved], "generator removed a station that does not exist")
	assert.Positive(t, replies[driver.ReplyAdded])
	assert.Positive(t, replies[driver.ReplyScrapped])
}

func TestGeneratorPlanOnly(t *testing.T) {
	lines := generate(t, Config{Seed: 4, Commands: 50, Span: 50, MaxRange: 20, PlanRatio: 1})
	plans := 0
	for _, l := range lines {
		if strings.HasPrefix(l, driver.CmdPlanRoute) {
			plans++
			continue
		}
		assert.True(t, strings.HasPrefix(l, driver.CmdAddStation+" "), l)
	}
	assert.GreaterOrEqual(t, plans, 40)
}

func TestReplayReport(t *testing.T) {
	cfg := Config{Seed: 11, Commands: 500, Span: 200, MaxRange: 60, MaxVehicles: 4, PlanRatio: 0.5}
	d := driver.New(highway.New(highway.Options{RouteCache: true}))
	rep, err := NewGenerator(cfg).Replay(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 500, rep.Commands)
	assert.Equal(t, 500, rep.Replies)
	assert.Positive(t, rep.Routes+rep.NoRoute)
	if rep.Routes > 0 {
		assert.GreaterOrEqual(t, rep.MeanStops, 1.0)
		assert.LessOrEqual(t, rep.P95Stops, float64(rep.MaxStops))
		assert.GreaterOrEqual(t, rep.StdDevStops, 0.0)
	}

	var buf bytes.Buffer
	require.NoError(t, rep.Print(&buf))
	assert.Contains(t, buf.String(), "commands: 500")
}

func TestReplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := driver.New(highway.New(highway.Options{}))
	_, err := NewGenerator(DefaultConfig()).Replay(ctx, d)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGeneratorTracksFleetCapacity(t *testing.T) {
	cfg := Config{Seed: 21, Commands: 3000, Span: 6, MaxRange: 30, MaxVehicles: 5, PlanRatio: 0.1, FleetCapacity: 3}
	g := NewGenerator(cfg)
	hw := highway.New(highway.Options{FleetCapacity: cfg.FleetCapacity})
	d := driver.New(hw)
	ctx := context.Background()
	scrapped := 0
	for i := 0; i < cfg.Commands; i++ {
		l := g.Next()
		reply, ok := d.Exec(ctx, l)
		require.True(t, ok, l)
		if reply == driver.ReplyScrapped {
			scrapped++
		}
		for pos, parked := range g.stations {
			require.LessOrEqual(t, len(parked), cfg.FleetCapacity, "station %d after %q", pos, l)
		}
	}
	assert.Positive(t, scrapped)

	snap := hw.Snapshot()
	require.Len(t, snap, len(g.stations))
	for _, s := range snap {
		want := slices.Clone(g.stations[s.Position])
		slices.Sort(want)
		assert.Equal(t, len(want), len(s.Vehicles), "station %d", s.Position)
		if len(want) > 0 {
			assert.Equal(t, want, s.Vehicles, "station %d", s.Position)
		}
	}
}
