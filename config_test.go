package msgsort

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	opts := c.Options()
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, 20, opts.Limit)
	assert.Zero(t, opts.QueueCapacity)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"NegativeLength":   func(c *Config) { c.Length = -1 },
		"NoWorkers":        func(c *Config) { c.Workers = 0 },
		"ZeroLimit":        func(c *Config) { c.Limit = 0 },
		"NegativeCapacity": func(c *Config) { c.QueueCapacity = -4 },
		"SmallCapacity":    func(c *Config) { c.QueueCapacity = 50 },
		"EmptyRange":       func(c *Config) { c.Min, c.Max = 3, 1 },
	} {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}

	c := DefaultConfig()
	c.Length = 0
	c.QueueCapacity = 1
	assert.NoError(t, c.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: 5000\nworkers: 8\nseed: 42\ncheckSpans: true\n"), 0o644))

	c, err := DefaultConfig().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, c.Length)
	assert.Equal(t, 8, c.Workers)
	assert.Equal(t, uint64(42), c.Seed)
	assert.True(t, c.CheckSpans)
	// untouched keys keep their defaults
	assert.Equal(t, 20, c.Limit)
	assert.Equal(t, 2.5, c.Max)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := DefaultConfig().LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lenght: 10\n"), 0o644))
	_, err = DefaultConfig().LoadFile(path)
	assert.Error(t, err, "unknown keys are rejected")
}
