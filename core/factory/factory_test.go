package factory

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.A != 3 {
		t.Fatalf("expected 3 got %d", inst.A)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("y", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "z"}); err == nil {
		t.Fatal("expected unknown type error")
	}
	assert.Equal(t, []string{"x"}, reg.Names())
}

func TestRegistry_WrapsFactoryError(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("bad", func(map[string]any) (int, error) { return 0, boom }))
	_, err := reg.Create(ModuleConfig{Type: "bad"})
	assert.ErrorIs(t, err, boom)
}

func TestDecodeWeakTypes(t *testing.T) {
	var c struct {
		Port    int           `json:"port"`
		Enabled bool          `json:"enabled"`
		Timeout time.Duration `json:"timeout"`
	}
	err := Decode(map[string]any{"port": "9090", "enabled": "true", "timeout": "2s"}, &c)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Port)
	assert.True(t, c.Enabled)
	assert.Equal(t, 2*time.Second, c.Timeout)
}
