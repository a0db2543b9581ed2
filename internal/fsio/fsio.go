// Package fsio reads source files and commits rewritten ones atomically.
package fsio

import (
	"os"
	"path/filepath"

	"tagdoc/internal/model"
)

// ReadFile returns the content of path as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &model.IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// WriteFileAtomic replaces path with content. The content goes to a temp
// file in the same directory, is synced and then renamed over path, so a
// failure leaves the original file intact. The original file mode is kept.
func WriteFileAtomic(path, content string) error {
	if err := writeAtomic(path, content); err != nil {
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func writeAtomic(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tagdoc-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
