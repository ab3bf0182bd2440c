// Package upload keeps uploaded workbooks on disk for the lifetime of a
// single request.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Store writes uploads under <dir>/<request id>/<original filename>.
type Store struct {
	dir     string
	logger  *log.Logger
	pending sync.WaitGroup
}

func NewStore(dir string, logger *log.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Save copies r into the store under the original filename and returns the
// path of the stored file. On failure nothing is left behind.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	dir := filepath.Join(s.dir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	path, err := write(filepath.Join(dir, name), r)
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn("failed to remove partial upload", "dir", dir, "err", rmErr)
		}
		return "", err
	}
	return path, nil
}

func write(path string, r io.Reader) (string, error) {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}

// Discard removes a stored upload in the background. Failures are logged
// and otherwise ignored.
func (s *Store) Discard(path string) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := os.RemoveAll(filepath.Dir(path)); err != nil {
			s.logger.Warn("failed to remove upload", "path", path, "err", err)
			return
		}
		s.logger.Debug("removed upload", "path", path)
	}()
}

// Wait blocks until every pending Discard has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}
