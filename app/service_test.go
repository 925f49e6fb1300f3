package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/highway/config"
	"github.com/kilianp07/highway/core/events"
	"github.com/kilianp07/highway/core/factory"
	coremetrics "github.com/kilianp07/highway/core/metrics"
	"github.com/kilianp07/highway/internal/journal"
)

type countingSink struct {
	mu       sync.Mutex
	commands int
	routes   int
	size     int
}

func (c *countingSink) RecordCommand(events.CommandEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands++
	return nil
}

func (c *countingSink) RecordRoute(events.RouteEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes++
	return nil
}

func (c *countingSink) RecordIndexSize(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = n
	return nil
}

var captured = &countingSink{}

type closableSink struct {
	countingSink
	closed bool
}

func (c *closableSink) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

var closables []*closableSink

func init() {
	_ = coremetrics.RegisterMetricsSink("app-test", func(map[string]any) (coremetrics.MetricsSink, error) {
		return captured, nil
	})
	_ = coremetrics.RegisterMetricsSink("app-closable", func(map[string]any) (coremetrics.MetricsSink, error) {
		c := &closableSink{}
		closables = append(closables, c)
		return c, nil
	})
}

const script = `aggiungi-stazione 0 1 5
aggiungi-stazione 4 1 6
aggiungi-stazione 9 0
pianifica-percorso 0 9
rottama-auto 4 6
pianifica-percorso 0 9
`

func TestServiceRunDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	var out bytes.Buffer
	st, err := svc.Run(context.Background(), strings.NewReader(script), &out)
	require.NoError(t, err)
	assert.Equal(t, "aggiunta\naggiunta\naggiunta\n0 4 9\nrottamata\nnessun percorso\n", out.String())
	assert.Equal(t, 6, st.Replies)
	assert.Empty(t, svc.Session())
}

func TestServiceJournalAndMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	cfg := &config.Config{
		Road:    config.RoadConfig{RouteCache: true},
		Journal: journal.Config{Backend: "jsonl", Path: path},
	}
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "app-test"}}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())

	svc, err := New(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	_, err = svc.Run(context.Background(), strings.NewReader(script), &out)
	require.NoError(t, err)
	session := svc.Session()
	require.NoError(t, svc.Close())

	store, err := journal.NewJSONLStore(path)
	require.NoError(t, err)
	recs, err := store.Query(context.Background(), journal.Query{Session: session})
	require.NoError(t, err)
	require.Len(t, recs, 6)
	assert.Equal(t, "0 4 9", recs[3].Reply)
	assert.Equal(t, "pianifica-percorso", recs[5].Command)

	captured.mu.Lock()
	defer captured.mu.Unlock()
	assert.Equal(t, 6, captured.commands)
	assert.Equal(t, 2, captured.routes)
	assert.Equal(t, 3, captured.size)
}

func TestServiceCloseReleasesEverySink(t *testing.T) {
	closables = nil
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "app-closable"}, {Type: "app-closable"}}
	require.NoError(t, cfg.Validate())

	svc, err := New(cfg)
	require.NoError(t, err)
	_, err = svc.Run(context.Background(), strings.NewReader(script), &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	require.Len(t, closables, 2)
	for i, c := range closables {
		c.mu.Lock()
		assert.True(t, c.closed, "sink %d not closed", i)
		assert.Equal(t, 6, c.commands, "sink %d", i)
		c.mu.Unlock()
	}
}
