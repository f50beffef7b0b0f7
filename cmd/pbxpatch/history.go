package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Mavwarf/voxa-build/internal/history"
)

type historyCommand struct {
	app   *app
	Count int `short:"n" long:"count" default:"10" description:"Number of runs to show (0 for all)"`
	Prune int `long:"prune" value-name:"DAYS" description:"Delete runs older than DAYS before listing"`
}

func (c *historyCommand) Execute(args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("history takes no arguments, got %v", args)}
	}
	if c.Count < 0 || c.Prune < 0 {
		return usageError{fmt.Errorf("count and prune must not be negative")}
	}

	a := c.app
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	path := cfg.HistoryFile()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(a.stdout, "No history recorded yet.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if c.Prune > 0 {
		n, err := store.Prune(time.Now().AddDate(0, 0, -c.Prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Pruned %d run(s) older than %d day(s).\n", n, c.Prune)
	}

	runs, err := store.Recent(c.Count)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(a.stdout, "No history recorded yet.")
		return nil
	}
	for i, r := range runs {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		printRun(a, r)
	}
	return nil
}

func printRun(a *app, r history.Run) {
	line := fmt.Sprintf("#%d  %s  %s  %s", r.ID, r.Time.Local().Format("2006-01-02 15:04:05"), bold(r.Command), r.Outcome)
	if r.DryRun {
		line += dim("  (dry run)")
	}
	if r.GitState != "" {
		line += dim("  git: " + r.GitState)
	}
	fmt.Fprintln(a.stdout, line)
	fmt.Fprintf(a.stdout, "    %s\n", r.Project)
	for _, st := range r.Steps {
		fmt.Fprintf(a.stdout, "    %-*s %s\n", colStatus, st.Status, st.Name)
		if st.Hint != "" {
			fmt.Fprintf(a.stdout, "    %*s %s\n", colStatus, "", dim(st.Hint))
		}
	}
}
