// mkappicon draws the Voxa app icon at every macOS size and writes the PNGs
// into the asset catalog's AppIcon.appiconset.
//
// Usage: mkappicon [--out DIR] [--resources DIR] [--contents] [--icns[=PATH]] [-c CONFIG]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/Mavwarf/voxa-build/internal/config"
	"github.com/Mavwarf/voxa-build/internal/icon"
	"github.com/Mavwarf/voxa-build/internal/paths"
)

// icnsDefault is the value --icns takes when given without a path.
const icnsDefault = "-"

// Options defines the mkappicon flags.
type Options struct {
	Config    string `short:"c" long:"config" description:"Config file path"`
	Out       string `short:"o" long:"out" description:"Output directory (overrides --resources)"`
	Resources string `short:"r" long:"resources" description:"Resources directory holding Assets.xcassets"`
	Contents  bool   `long:"contents" description:"Also write the asset catalog Contents.json"`
	ICNS      string `long:"icns" optional:"yes" optional-value:"-" description:"Also write an .icns container (default <resources>/<icon_name>)"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if len(rest) > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", rest)
		return 2
	}

	if err := generate(opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func generate(opts Options, stdout io.Writer) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}

	resources := opts.Resources
	if resources == "" {
		resources = cfg.ResourcesDir
	}
	if resources == "" {
		resources = config.DefaultResourcesDir
	}
	dir := opts.Out
	if dir == "" {
		dir = paths.IconSetDir(resources)
	}

	created := func(p string) { fmt.Fprintf(stdout, "Created: %s\n", p) }
	if _, err := icon.Generate(dir, created); err != nil {
		return err
	}

	if opts.Contents {
		p, err := icon.WriteContents(dir)
		if err != nil {
			return err
		}
		created(p)
	}

	if opts.ICNS != "" {
		p := opts.ICNS
		if p == icnsDefault {
			p = filepath.Join(resources, cfg.Vars().IconName)
		}
		if err := icon.WriteICNS(p); err != nil {
			return err
		}
		created(p)
	}

	fmt.Fprintf(stdout, "\nApp icons generated successfully in: %s\n", dir)
	return nil
}
