// pbxpatch applies the Voxa icon patches to an Xcode project.pbxproj.
//
// Usage:
//
//	pbxpatch [-c CONFIG] [-p PROJECT] [--dry-run] [--require-clean] [--no-history] build-phase|icon-ref
//	pbxpatch history [-n N] [--prune DAYS]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/Mavwarf/voxa-build/internal/config"
	"github.com/Mavwarf/voxa-build/internal/patches"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitPartial = 3
)

// Options are the flags shared by every command.
type Options struct {
	Config       string `short:"c" long:"config" description:"Config file path"`
	Project      string `short:"p" long:"project" description:"project.pbxproj file or .xcodeproj directory"`
	DryRun       bool   `long:"dry-run" description:"Report what would change without writing"`
	RequireClean bool   `long:"require-clean" description:"Refuse to patch a file with uncommitted git changes"`
	NoHistory    bool   `long:"no-history" description:"Do not record this run in the history database"`
}

type app struct {
	Options
	stdout io.Writer
	stderr io.Writer
	code   int
}

// usageError marks errors that exit with exitUsage.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	parser := flags.NewParser(&a.Options, flags.HelpFlag|flags.PassDoubleDash)

	parser.AddCommand(patches.BuildPhase, "Add the Copy AppIcon.icns shell script build phase",
		"Inserts a shell script build phase that copies the pre-built icon into the app bundle and registers it on the target.",
		&patchCommand{app: a, plan: patches.BuildPhase})
	parser.AddCommand(patches.IconRef, "Reference AppIcon.icns in the project",
		"Adds the icon's file reference, group child, resources phase entry and build file, and drops the asset catalog icon setting.",
		&patchCommand{app: a, plan: patches.IconRef})
	parser.AddCommand("history", "List recent patch runs",
		"Lists recorded patch runs, newest first, with their step results.",
		&historyCommand{app: a})

	_, err := parser.ParseArgs(args)
	if err == nil {
		return a.code
	}

	var ferr *flags.Error
	var uerr usageError
	switch {
	case errors.As(err, &ferr) && ferr.Type == flags.ErrHelp:
		fmt.Fprintln(stdout, ferr.Message)
		return exitOK
	case errors.As(err, &ferr), errors.As(err, &uerr):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func (a *app) loadConfig() (config.Config, error) {
	return config.Load(a.Config)
}

func (a *app) warnf(format string, args ...any) {
	fmt.Fprintf(a.stderr, format+"\n", args...)
}
