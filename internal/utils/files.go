package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	return SafeWrite(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// SafeWrite streams output produced by fn into a temp file next to path and
// renames it into place once fn and the flush succeed. A failed write leaves
// any existing file at path untouched.
func SafeWrite(path string, fn func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	bufw := bufio.NewWriter(f)
	if err := fn(bufw); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := bufw.Flush(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// DerivedPath returns the output path for an input file: the explicit
// override when set, otherwise input+suffix. The parent directory of an
// override is created if missing.
func DerivedPath(input, suffix, override string) (string, error) {
	if override == "" {
		return input + suffix, nil
	}
	if dir := filepath.Dir(override); dir != "." {
		if err := EnsureDir(dir); err != nil {
			return "", fmt.Errorf("ensure output dir: %w", err)
		}
	}
	return override, nil
}
