package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `road:
  fleet_capacity: 16
  route_cache: true
logging:
  level: debug
  format: console
journal:
  backend: sqlite
  path: "journal.db"
metrics:
  prometheus_addr: ":9100"
  sinks:
    - type: "nop"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"road.fleet_capacity", cfg.Road.FleetCapacity, 16},
		{"road.route_cache", cfg.Road.RouteCache, true},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "console"},
		{"journal.backend", cfg.Journal.Backend, "sqlite"},
		{"journal.path", cfg.Journal.Path, "journal.db"},
		{"metrics.prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Road.FleetCapacity)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "none", cfg.Journal.Backend)
	assert.Empty(t, cfg.Metrics.Sinks)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.json", `{"road":{"fleet_capacity":8},"logging":{"level":"warn"}}`)
	t.Setenv("K_ROAD__FLEET_CAPACITY", "32")
	t.Setenv("K_LOGGING__FORMAT", "console")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Road.FleetCapacity)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"negative capacity": "road:\n  fleet_capacity: -1\n",
		"bad level":         "logging:\n  level: loud\n",
		"bad backend":       "journal:\n  backend: postgres\n",
		"sink without type": "metrics:\n  sinks:\n    - conf: {}\n",
		"bad addr":          "metrics:\n  prometheus_addr: \"nope\"\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", data))
			assert.Error(t, err)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "x = 1"))
	assert.Error(t, err)
}
