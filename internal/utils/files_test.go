package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileReplacesContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(p, []byte("old"), 0o644))
	require.NoError(t, SafeWriteFile(p, []byte("new")))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be gone")
}

func TestSafeWriteKeepsOriginalOnFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(p, []byte("keep"), 0o644))

	boom := errors.New("boom")
	err := SafeWrite(p, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(b))
}

func TestDerivedPath(t *testing.T) {
	got, err := DerivedPath("/data/x.npy", ".png", "")
	require.NoError(t, err)
	assert.Equal(t, "/data/x.npy.png", got)

	dir := t.TempDir()
	override := filepath.Join(dir, "nested", "plot.png")
	got, err = DerivedPath("/data/x.npy", ".png", override)
	require.NoError(t, err)
	assert.Equal(t, override, got)
	info, err := os.Stat(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
