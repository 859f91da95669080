package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunIsSilentOnSuccess(t *testing.T) {
	stdout, stderr, err := execute(t, "--length", "5000", "--workers", "3", "--seed", "7", "--check-spans")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "msgsort: sorted")
	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "length=5000")
}

func TestRunDefaults(t *testing.T) {
	stdout, stderr, err := execute(t, "--log-format", "json")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `"length":1000`)
	assert.Contains(t, stderr, `"workers":4`)
}

func TestRunEmptyBuffer(t *testing.T) {
	stdout, _, err := execute(t, "--length", "0", "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestBadFlags(t *testing.T) {
	for name, args := range map[string][]string{
		"NoWorkers":     {"--workers", "0"},
		"SmallQueue":    {"--capacity", "50"},
		"NegativeLimit": {"--limit", "-1"},
		"LogLevel":      {"--log-level", "chatty"},
		"LogFormat":     {"--log-format", "xml"},
		"ExtraArgs":     {"now"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: 3000\nworkers: 2\nlimit: 8\n"), 0o644))

	_, stderr, err := execute(t, "--config", path, "--workers", "5", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "length=3000")
	assert.Contains(t, stderr, "workers=5")
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, report(&out, []float64{1, 2, 2, 3}))
	assert.Empty(t, out.String())

	assert.False(t, report(&out, []float64{1, 3, 2, 0}))
	assert.Equal(t, "error: a[1]=3.000000 > a[2]=2.000000\n", out.String())
}

func TestAllocate(t *testing.T) {
	data, err := allocate(16)
	require.NoError(t, err)
	assert.Len(t, data, 16)

	_, err = allocate(-1)
	assert.Error(t, err)
}
