package artifacts

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"artifex/internal/services"
)

// LockName is the lock file created inside an artifact directory.
const LockName = ".lock"

// Lock holds an exclusive advisory lock on an artifact directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock for dir without blocking. The directory must exist.
// A lock held by another process is reported immediately.
func Acquire(command, dir string) (*Lock, error) {
	path := filepath.Join(dir, LockName)
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, command, "lock", fmt.Sprintf("another invocation is writing to %s", dir), nil)
	}
	return &Lock{path: path, lock: l}, nil
}

// Release drops the lock. Safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}
