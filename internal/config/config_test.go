package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_HasSaneDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, "wbfm", c.Scheme)
	assert.Equal(t, 48_000, c.OutputSampleRate)
	assert.True(t, c.WBFM.Stereo)
}

func TestLoadYAML_OverlaysOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radio.yaml")
	contents := "scheme: nbfm\nnbfm:\n  hz: 3000\n  squelch: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	c := New()
	require.NoError(t, c.LoadYAML(path))

	assert.Equal(t, "nbfm", c.Scheme)
	assert.Equal(t, 3000.0, c.NBFM.Hz)
	assert.Equal(t, 2.0, c.NBFM.Squelch)
	// Untouched fields keep their defaults.
	assert.Equal(t, 48_000, c.OutputSampleRate)
	assert.True(t, c.WBFM.Stereo)
}

func TestLoadYAML_MissingFileErrors(t *testing.T) {
	c := New()
	err := c.LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
