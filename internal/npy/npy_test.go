package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// rawNpy builds a version 1.0 .npy file by hand so the loader is tested
// against bytes it did not write itself.
func rawNpy(t *testing.T, descr string, fortran bool, shape string, payload any) []byte {
	t.Helper()
	order := "False"
	if fortran {
		order = "True"
	}
	hdr := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", descr, order, shape)
	// magic(6) + version(2) + hlen(2) + header + '\n' padded to 64 bytes
	total := 10 + len(hdr) + 1
	pad := (64 - total%64) % 64
	for i := 0; i < pad; i++ {
		hdr += " "
	}
	hdr += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(hdr))))
	buf.WriteString(hdr)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, payload))
	return buf.Bytes()
}

func TestReadUint16Matrix(t *testing.T) {
	raw := rawNpy(t, "<u2", false, "(2, 3)", []uint16{1, 2, 3, 4, 5, 6})
	m, err := Read(bytes.NewReader(raw))
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{1, 2, 3}, mat.Row(nil, 0, m))
	assert.Equal(t, []float64{4, 5, 6}, mat.Row(nil, 1, m))
}

func TestReadFortranOrder(t *testing.T) {
	// Column-major storage of [[1 2 3] [4 5 6]].
	raw := rawNpy(t, "<f8", true, "(2, 3)", []float64{1, 4, 2, 5, 3, 6})
	m, err := Read(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, mat.Row(nil, 0, m))
	assert.Equal(t, []float64{4, 5, 6}, mat.Row(nil, 1, m))
}

func TestReadRejectsVector(t *testing.T) {
	raw := rawNpy(t, "<f8", false, "(3,)", []float64{1, 2, 3})
	_, err := Read(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrNotMatrix)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not an array at all")))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.npy"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	want := mat.NewDense(3, 4, []float64{
		0.5, -1.25, 3, 1e-9,
		-7, 0, 2.75, 42,
		1, 2, 3, 4,
	})
	p := filepath.Join(t.TempDir(), "x.pca.npy")
	require.NoError(t, Save(p, want))

	got, h, err := LoadWithHeader(p)
	require.NoError(t, err)
	assert.Equal(t, "f8", h.Dtype)
	assert.Equal(t, []int{3, 4}, h.Shape)
	assert.False(t, h.ColumnMajor)
	assert.True(t, mat.Equal(want, got), "round trip must be exact")
}
