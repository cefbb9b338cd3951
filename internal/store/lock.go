package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock provides cross-process locking of the data directory using
// gofrs/flock. The index has a single-writer model: two concurrent runs
// against the same folder would interleave their checkpoints, so the
// second run must fail fast instead.
type RunLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewRunLock creates a run lock for the given data directory. The lock
// file lives at <dir>/run.lock.
func NewRunLock(dir string) *RunLock {
	lockPath := filepath.Join(dir, "run.lock")
	return &RunLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Acquire takes the lock without blocking. It fails when another run
// already holds it.
func (l *RunLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	locked, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run is already in progress (lock held at %s)", l.path)
	}

	l.locked = true
	return nil
}

// Release drops the lock. Safe to call when not held.
func (l *RunLock) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}
