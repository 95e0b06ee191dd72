// Package runlock guarantees that at most one validation runs at a time on
// the host, across processes, using an advisory file lock.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld is returned by TryAcquire when another holder owns the lock.
var ErrHeld = errors.New("validation lock held by another process")

// Lock wraps a flock file lock.
type Lock struct {
	flock *flock.Flock
	path  string
}

// New creates a lock backed by the file at path. The file is created on first
// acquisition.
func New(path string) *Lock {
	return &Lock{
		flock: flock.New(path),
		path:  path,
	}
}

// DefaultPath returns the lock file location used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "examguard.lock")
}

// TryAcquire takes the lock without blocking.
func (l *Lock) TryAcquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	ok, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	if !ok {
		return ErrHeld
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}
