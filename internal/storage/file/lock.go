package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

const lockRetry = 10 * time.Millisecond

var errLocked = errors.New("snapshot locked")

// acquire takes the exclusive lock at path, retrying until ctx is done.
func acquire(ctx context.Context, path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock: %w", err)
	}
	for {
		err := tryLock(f)
		if err == nil {
			return func() {
				unlock(f)
				f.Close()
			}, nil
		}
		if !errors.Is(err, errLocked) {
			f.Close()
			return nil, fmt.Errorf("lock snapshot: %w", err)
		}
		select {
		case <-ctx.Done():
			f.Close()
			return nil, fmt.Errorf("lock snapshot: %w", ctx.Err())
		case <-time.After(lockRetry):
		}
	}
}
