package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Components)
	assert.Equal(t, 80, c.DPI)
	assert.Equal(t, 6.4, c.WidthIn)
	assert.Equal(t, 4.8, c.HeightIn)
	assert.Equal(t, ".2.fasta", c.ExcludeMarker)
	assert.Equal(t, "exact", c.MatchMode)
	assert.Equal(t, "error", c.Collision)
	assert.Equal(t, "error", c.UnknownLabel)
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg", "genoplot.yaml")

	c, err := Load(p)
	require.NoError(t, err, "missing explicit file is not an error")
	c.Components = 2
	c.UnknownLabel = "black"
	c.LabelColors = map[string]string{"XYZ": "teal"}
	require.NoError(t, Save(c, p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Components)
	assert.Equal(t, "black", got.UnknownLabel)
	assert.Equal(t, map[string]string{"XYZ": "teal"}, got.LabelColors)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(p, []byte("components: 3\n"), 0o644))
	t.Setenv("GENOPLOT_COMPONENTS", "5")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Components)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(p, []byte("dpi: 0\n"), 0o644))
	_, err := Load(p)
	require.Error(t, err)
}

func TestDefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".genoplot", "config.yaml"), p)
}
