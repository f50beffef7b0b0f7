package pbxproj

import (
	"fmt"
	"os"

	"github.com/Mavwarf/voxa-build/internal/filelock"
	"github.com/Mavwarf/voxa-build/internal/paths"
)

// Options controls PatchFile.
type Options struct {
	DryRun bool // run and validate, but leave the file alone
}

// PatchFile runs plan against the file at path while holding its lock.
// The file is rewritten atomically, and only when a step applied and the
// result validates. The report is returned even when err is non-nil.
func PatchFile(path string, plan Plan, opts Options) (Report, error) {
	rep := Report{Plan: plan.Name}
	if _, err := os.Stat(path); err != nil {
		return rep, fmt.Errorf("project file: %w", err)
	}

	lk, err := filelock.Acquire(path)
	if err != nil {
		return rep, err
	}
	defer lk.Release()

	data, err := os.ReadFile(path)
	if err != nil {
		return rep, fmt.Errorf("reading %s: %w", path, err)
	}

	out, rep := plan.Run(string(data))
	if !rep.Changed() {
		return rep, nil
	}
	// A result that is not written is a failure whatever the steps did.
	if err := Validate(out); err != nil {
		rep.Outcome = Failure
		return rep, fmt.Errorf("patched %s: %w", path, err)
	}
	if opts.DryRun {
		return rep, nil
	}
	if err := paths.AtomicWrite(path, []byte(out)); err != nil {
		rep.Outcome = Failure
		return rep, fmt.Errorf("writing %s: %w", path, err)
	}
	return rep, nil
}
