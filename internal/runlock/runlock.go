// Package runlock guards the library tree against concurrent consolidation
// runs. Every mutating phase acquires an advisory lock and fails fast when
// another process holds it. The lock file lives in the report directory,
// never inside the library tree, so validation sees only author directories
// at the library root.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".bindery.lock"

// Lock is a held advisory lock on the consolidation pipeline.
type Lock struct {
	flock *flock.Flock
}

// Acquire takes the pipeline lock without blocking. A second caller gets an
// error naming the lock file so the operator can find the competing process.
func Acquire(stateDir string) (*Lock, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	path := filepath.Join(stateDir, lockFileName)
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("library is locked by another bindery process (%s)", path)
	}
	return &Lock{flock: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
