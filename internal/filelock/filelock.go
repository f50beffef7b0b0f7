// Package filelock guards a file with an advisory lock held on a sidecar
// "<path>.lock" file, so two patch runs never interleave on one project.
package filelock

import (
	"errors"
	"fmt"
	"os"

	"github.com/Mavwarf/voxa-build/internal/paths"
)

// ErrLocked is returned when another process already holds the lock.
var ErrLocked = errors.New("file is locked by another process")

// Lock is a held lock. Release it when done.
type Lock struct {
	f    *os.File
	path string
}

// Acquire takes an exclusive lock for path without blocking.
func Acquire(path string) (*Lock, error) {
	lp := path + ".lock"
	f, err := os.OpenFile(lp, os.O_RDWR|os.O_CREATE, paths.FilePerm)
	if err != nil {
		return nil, fmt.Errorf("opening lock %s: %w", lp, err)
	}
	if err := lock(f); err != nil {
		f.Close()
		if errors.Is(err, ErrLocked) {
			return nil, fmt.Errorf("%s: %w", path, ErrLocked)
		}
		return nil, fmt.Errorf("locking %s: %w", lp, err)
	}
	return &Lock{f: f, path: lp}, nil
}

// Release drops the lock. The sidecar stays on disk so every process
// locks the same inode.
func (l *Lock) Release() error {
	err := unlock(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Path returns the sidecar lock file path.
func (l *Lock) Path() string { return l.path }
