package main

import (
	"os"

	"golang.org/x/term"
)

// --- ANSI color helpers (enabled only for a terminal without NO_COLOR) ---

var noColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func bold(s string) string   { return ansi("\033[1m", s) }
func dim(s string) string    { return ansi("\033[2m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func yellow(s string) string { return ansi("\033[33m", s) }
func red(s string) string    { return ansi("\033[31m", s) }

// padR pads s with spaces to width, ignoring invisible ANSI bytes of
// colored versions of the same text.
func padR(colored, plain string, width int) string {
	for n := len(plain); n < width; n++ {
		colored += " "
	}
	return colored
}
