package simulator

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/highway/driver"
)

// Report summarizes a generated stream replayed through a driver.
type Report struct {
	Commands int
	Replies  int
	Routes   int
	NoRoute  int
	// Stop statistics over the routes that were found.
	MeanStops   float64
	StdDevStops float64
	P95Stops    float64
	MaxStops    int
	Elapsed     time.Duration
}

// Replay feeds cfg.Commands generated lines to d and summarizes the route
// answers.
func (g *Generator) Replay(ctx context.Context, d *driver.Driver) (Report, error) {
	var rep Report
	var stops []float64
	start := time.Now()
	for i := 0; i < g.cfg.Commands; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		l := g.Next()
		rep.Commands++
		reply, ok := d.Exec(ctx, l)
		if !ok {
			continue
		}
		rep.Replies++
		if !strings.HasPrefix(l, driver.CmdPlanRoute) {
			continue
		}
		if reply == driver.ReplyNoRoute {
			rep.NoRoute++
			continue
		}
		rep.Routes++
		n := len(strings.Fields(reply))
		stops = append(stops, float64(n))
		rep.MaxStops = max(rep.MaxStops, n)
	}
	rep.Elapsed = time.Since(start)
	if len(stops) > 0 {
		sort.Float64s(stops)
		rep.MeanStops = stat.Mean(stops, nil)
		if len(stops) > 1 {
			rep.StdDevStops = stat.StdDev(stops, nil)
		}
		rep.P95Stops = stat.Quantile(0.95, stat.Empirical, stops, nil)
	}
	return rep, nil
}

// Print writes a human readable summary.
func (r Report) Print(w io.Writer) error {
	rate := 0.0
	if r.Elapsed > 0 {
		rate = float64(r.Commands) / r.Elapsed.Seconds()
	}
	_, err := fmt.Fprintf(w,
		"commands: %d (%.0f/s)\nreplies: %d\nroutes: %d found, %d none\nstops: mean %.2f stddev %.2f p95 %.0f max %d\n",
		r.Commands, rate, r.Replies, r.Routes, r.NoRoute,
		r.MeanStops, r.StdDevStops, r.P95Stops, r.MaxStops)
	return err
}
