// Package fs provides filesystem adapters for reading manifests and writing
// reports.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/eykd/manifestlint-go/internal/lock"
)

// StdinPath is the path that OSReader reads from standard input.
const StdinPath = "-"

// OSReader implements validator.FileReader using os.ReadFile. Standard
// input is read at most once; every StdinPath read returns the same bytes.
type OSReader struct {
	// Stdin is read for StdinPath. Nil means os.Stdin.
	Stdin io.Reader

	stdinOnce sync.Once
	stdinData []byte
	stdinErr  error
}

// ReadFile reads the manifest at path, or standard input for StdinPath.
func (r *OSReader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == StdinPath {
		return r.readStdin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (r *OSReader) readStdin() ([]byte, error) {
	r.stdinOnce.Do(func() {
		in := r.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			r.stdinErr = fmt.Errorf("reading stdin: %w", err)
			return
		}
		r.stdinData = data
	})
	if r.stdinErr != nil {
		return nil, r.stdinErr
	}
	return r.stdinData, nil
}

// ReportWriter writes report files under an advisory lock.
type ReportWriter struct {
	// NewLock returns the lock guarding path. Nil means lock.ForReport.
	NewLock func(path string) *lock.Lock
}

// WriteReport replaces the file at path with data. The write goes to a
// temporary file in the same directory that is renamed over path, so
// readers never see a partial report.
func (w *ReportWriter) WriteReport(ctx context.Context, path string, data []byte) error {
	newLock := w.NewLock
	if newLock == nil {
		newLock = lock.ForReport
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	return newLock(path).With(ctx, func() error {
		return writeAtomic(path, data)
	})
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
