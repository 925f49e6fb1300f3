package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestConfigureJSONOutput(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	require.NoError(t, Configure(Options{Level: "warn", Format: "json", Out: &buf}))
	t.Cleanup(func() { _ = Configure(Options{}) })

	l := New("driver")
	l.Infof("hidden")
	l.Warnf("unknown command %q", "foo")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "driver", entry["component"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, `unknown command "foo"`, entry["message"])
}

func TestConfigureRejectsBadLevel(t *testing.T) {
	assert.Error(t, Configure(Options{Level: "loud"}))
}
