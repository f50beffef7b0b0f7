// Package vcs reports the git state of a file before it is patched.
package vcs

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// State is the git state of one file.
type State string

const (
	Clean     State = "clean"
	Modified  State = "modified"
	Untracked State = "untracked"
	NotInRepo State = "not-in-repo"
)

// ErrDirty is returned by RequireClean for a file with uncommitted changes.
var ErrDirty = errors.New("file has uncommitted changes")

// FileState returns the git state of path. A file outside any repository
// is NotInRepo, not an error.
func FileState(path string) (State, error) {
	abs, err := resolve(path)
	if err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return NotInRepo, nil
	}
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("reading status: %w", err)
	}

	// Status only lists files that differ from HEAD.
	fs, ok := status[filepath.ToSlash(rel)]
	switch {
	case !ok:
		return Clean, nil
	case fs.Worktree == git.Untracked:
		return Untracked, nil
	case fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified:
		return Clean, nil
	default:
		return Modified, nil
	}
}

// RequireClean fails with ErrDirty when path has uncommitted or untracked
// changes. It returns the state it saw either way.
func RequireClean(path string) (State, error) {
	st, err := FileState(path)
	if err != nil {
		return st, err
	}
	if st == Modified || st == Untracked {
		return st, fmt.Errorf("%s: %w (%s)", path, ErrDirty, st)
	}
	return st, nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
