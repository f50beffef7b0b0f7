//go:build !(linux || darwin || freebsd || openbsd || netbsd || windows)

package filelock

import "os"

// Platforms without flock or LockFileEx run unlocked.
func lock(f *os.File) error   { return nil }
func unlock(f *os.File) error { return nil }
