package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"strmctl/internal/services"
)

const lockRetryDelay = 50 * time.Millisecond

// Lock is an exclusive advisory lock serializing session mutations across
// processes.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock blocks until the lock at path is held or ctx is done.
func AcquireLock(ctx context.Context, path string) (*Lock, error) {
	ctx = ensureContext(ctx)
	lock := flock.New(path)
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, services.Wrap(services.ErrState, "session", "acquire lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrState, "session", "acquire lock", fmt.Sprintf("%s is held by another process", path), nil)
	}
	return &Lock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. Calling it on a nil Lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
