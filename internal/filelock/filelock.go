// Package filelock provides an exclusive advisory lock on a file, used to
// serialise writers of the task store across processes.
package filelock

import (
	"errors"
	"fmt"
	"os"
)

const lockMode = 0o600

// Lock blocks until it holds an exclusive lock on path, creating the file
// if needed. The returned function releases the lock.
func Lock(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockMode) //nolint:gosec // lock path is inside the data dir
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	return func() error {
		return errors.Join(unlockFile(f), f.Close())
	}, nil
}
