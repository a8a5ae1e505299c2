// Package npy reads and writes two-dimensional NumPy arrays as gonum matrices.
package npy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KaramelBytes/genoplot/internal/utils"
	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotMatrix is returned for arrays whose rank is not 2.
	ErrNotMatrix = errors.New("array is not two-dimensional")
	// ErrUnsupportedDtype is returned for dtypes other than the fixed-width
	// integer and float kinds.
	ErrUnsupportedDtype = errors.New("unsupported array dtype")
)

// Header describes an array as stored on disk.
type Header struct {
	Dtype       string
	Shape       []int
	ColumnMajor bool
}

// Load reads the .npy file at path into a rows×cols matrix.
func Load(path string) (*mat.Dense, error) {
	m, _, err := LoadWithHeader(path)
	return m, err
}

// LoadWithHeader is Load that also reports the on-disk header.
func LoadWithHeader(path string) (*mat.Dense, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("open array: %w", err)
	}
	defer f.Close()
	m, h, err := read(f)
	if err != nil {
		return nil, h, fmt.Errorf("%s: %w", path, err)
	}
	return m, h, nil
}

// Read decodes an .npy stream into a matrix.
func Read(r io.Reader) (*mat.Dense, error) {
	m, _, err := read(r)
	return m, err
}

func read(r io.Reader) (*mat.Dense, Header, error) {
	npr, err := gonpy.NewReader(r)
	if err != nil {
		return nil, Header{}, fmt.Errorf("read npy header: %w", err)
	}
	h := Header{Dtype: npr.Dtype, Shape: append([]int(nil), npr.Shape...), ColumnMajor: npr.ColumnMajor}
	if len(npr.Shape) != 2 {
		return nil, h, fmt.Errorf("%w: shape %v", ErrNotMatrix, npr.Shape)
	}
	rows, cols := npr.Shape[0], npr.Shape[1]
	data, err := readFloats(npr)
	if err != nil {
		return nil, h, err
	}
	if len(data) != rows*cols {
		return nil, h, fmt.Errorf("read npy data: got %d values for shape %v", len(data), npr.Shape)
	}
	if rows == 0 || cols == 0 {
		return &mat.Dense{}, h, nil
	}
	if npr.ColumnMajor {
		// Fortran order: data is the cols×rows row-major transpose.
		t := mat.NewDense(cols, rows, data)
		return mat.DenseCopyOf(t.T()), h, nil
	}
	return mat.NewDense(rows, cols, data), h, nil
}

// readFloats widens any supported dtype to float64.
func readFloats(npr *gonpy.NpyReader) ([]float64, error) {
	switch npr.Dtype {
	case "f8":
		v, err := npr.GetFloat64()
		return v, wrapData(err)
	case "f4":
		v, err := npr.GetFloat32()
		return widen(v), wrapData(err)
	case "i1":
		v, err := npr.GetInt8()
		return widen(v), wrapData(err)
	case "i2":
		v, err := npr.GetInt16()
		return widen(v), wrapData(err)
	case "i4":
		v, err := npr.GetInt32()
		return widen(v), wrapData(err)
	case "i8":
		v, err := npr.GetInt64()
		return widen(v), wrapData(err)
	case "u1":
		v, err := npr.GetUint8()
		return widen(v), wrapData(err)
	case "u2":
		v, err := npr.GetUint16()
		return widen(v), wrapData(err)
	case "u4":
		v, err := npr.GetUint32()
		return widen(v), wrapData(err)
	case "u8":
		v, err := npr.GetUint64()
		return widen(v), wrapData(err)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDtype, npr.Dtype)
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32
}

func widen[T number](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func wrapData(err error) error {
	if err != nil {
		return fmt.Errorf("read npy data: %w", err)
	}
	return nil
}

// Save writes m to path as a little-endian float64 C-order array.
func Save(path string, m mat.Matrix) error {
	return utils.SafeWrite(path, func(w io.Writer) error {
		return Write(w, m)
	})
}

// Write encodes m as an .npy stream.
func Write(w io.Writer, m mat.Matrix) error {
	rows, cols := m.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, m.At(i, j))
		}
	}
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return fmt.Errorf("npy writer: %w", err)
	}
	npw.Shape = []int{rows, cols}
	if err := npw.WriteFloat64(data); err != nil {
		return fmt.Errorf("write npy: %w", err)
	}
	return nil
}

// nopCloser keeps gonpy from closing a writer it does not own.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
