package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Mavwarf/voxa-build/internal/config"
	"github.com/Mavwarf/voxa-build/internal/history"
	"github.com/Mavwarf/voxa-build/internal/mqtt"
	"github.com/Mavwarf/voxa-build/internal/patches"
	"github.com/Mavwarf/voxa-build/internal/pbxproj"
	"github.com/Mavwarf/voxa-build/internal/vcs"
)

// confirmations are printed after a successful, written patch.
var confirmations = map[string]string{
	patches.BuildPhase: "Build phase added successfully!",
	patches.IconRef:    "Xcode project file updated successfully!",
}

type patchCommand struct {
	app  *app
	plan string
}

func (c *patchCommand) Execute(args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("%s takes no arguments, got %v", c.plan, args)}
	}
	code, err := c.app.patch(c.plan)
	c.app.code = code
	return err
}

func (a *app) patch(name string) (int, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return exitFailure, err
	}
	project, err := cfg.ProjectPath(a.Project)
	if err != nil {
		if errors.Is(err, config.ErrNoProject) {
			return exitUsage, usageError{err}
		}
		return exitFailure, err
	}
	plan, ok := patches.ForName(name, cfg.Vars())
	if !ok {
		return exitUsage, usageError{fmt.Errorf("unknown patch %q", name)}
	}

	state, err := a.gitState(project)
	if err != nil {
		return exitFailure, err
	}

	rep, err := pbxproj.PatchFile(project, plan, pbxproj.Options{DryRun: a.DryRun})
	if len(rep.Results) > 0 {
		printReport(a.stdout, rep)
		a.record(cfg, project, rep, string(state))
		a.publish(cfg, project, rep)
	}
	if err != nil {
		return exitFailure, err
	}

	switch {
	case a.DryRun:
		fmt.Fprintf(a.stdout, "Dry run: %s not written.\n", project)
	case rep.Outcome == pbxproj.Success:
		fmt.Fprintln(a.stdout, confirmations[name])
	case rep.Outcome == pbxproj.UpToDate:
		fmt.Fprintln(a.stdout, "Project already up to date.")
	}
	return exitCode(rep.Outcome), nil
}

// gitState checks the project file before patching. A dirty file is only a
// warning unless --require-clean is set. Git errors never block a patch.
func (a *app) gitState(project string) (vcs.State, error) {
	if a.RequireClean {
		return vcs.RequireClean(project)
	}
	state, err := vcs.FileState(project)
	if err != nil {
		a.warnf("vcs: %v", err)
		return "", nil
	}
	if state == vcs.Modified || state == vcs.Untracked {
		a.warnf("warning: %s has uncommitted changes (%s)", project, state)
	}
	return state, nil
}

func (a *app) record(cfg config.Config, project string, rep pbxproj.Report, gitState string) {
	if !cfg.History || a.NoHistory {
		return
	}
	store, err := history.Open(cfg.HistoryFile())
	if err != nil {
		a.warnf("history: %v", err)
		return
	}
	defer store.Close()
	if _, err := store.Record(rep.Plan, project, rep, a.DryRun, gitState); err != nil {
		a.warnf("history: %v", err)
	}
}

func (a *app) publish(cfg config.Config, project string, rep pbxproj.Report) {
	m := cfg.MQTT
	if m.Broker == "" {
		return
	}
	clientID := m.ClientID
	if clientID == "" {
		clientID = "voxa-build-pbxpatch"
	}
	opts := mqtt.Options{
		Broker:   m.Broker,
		ClientID: clientID,
		Topic:    m.Topic,
		QoS:      m.QoS,
		Retain:   m.Retain,
		Username: m.Username,
		Password: m.Password,
	}
	if err := mqtt.PublishReport(opts, project, rep, a.DryRun); err != nil {
		a.warnf("%v", err)
	}
}

func exitCode(o pbxproj.Outcome) int {
	switch o {
	case pbxproj.Success, pbxproj.UpToDate:
		return exitOK
	case pbxproj.Partial:
		return exitPartial
	default:
		return exitFailure
	}
}

const colStatus = 10

func statusText(s pbxproj.Status) string {
	plain := s.String()
	var colored string
	switch s {
	case pbxproj.Applied:
		colored = green(plain)
	case pbxproj.Unchanged:
		colored = dim(plain)
	default:
		colored = yellow(plain)
	}
	return padR(colored, plain, colStatus)
}

func outcomeText(o pbxproj.Outcome) string {
	switch o {
	case pbxproj.Success, pbxproj.UpToDate:
		return green(o.String())
	case pbxproj.Partial:
		return yellow(o.String())
	default:
		return red(o.String())
	}
}

func printReport(w io.Writer, rep pbxproj.Report) {
	for _, r := range rep.Results {
		fmt.Fprintf(w, "  %s %s\n", statusText(r.Status), r.Step)
		if r.Hint != "" {
			fmt.Fprintf(w, "  %*s %s\n", colStatus, "", dim(r.Hint))
		}
	}
	fmt.Fprintf(w, "%s: %s (%d applied, %d unchanged, %d skipped)\n",
		bold(rep.Plan), outcomeText(rep.Outcome),
		rep.Count(pbxproj.Applied), rep.Count(pbxproj.Unchanged), rep.Count(pbxproj.Skipped))
}
