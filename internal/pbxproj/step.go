// Package pbxproj applies text patches to Xcode project.pbxproj files.
//
// A patch is a Plan: an ordered list of Steps, each anchored on a literal
// or pattern that must already be in the file. Every step reports whether
// it applied, found its change already in place, or could not find its
// anchor, so a rerun on a patched file is a byte-for-byte no-op and a
// missing anchor is visible instead of silently ignored.
package pbxproj

import (
	"regexp"
	"strings"
)

// Status is the outcome of a single step.
type Status int

const (
	Applied   Status = iota // buffer changed
	Unchanged               // change already present; buffer untouched
	Skipped                 // anchor not found; buffer untouched
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalText lets reports encode statuses by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result describes what one step did.
type Result struct {
	Step   string `json:"name"`
	Status Status `json:"status"`
	Hint   string `json:"hint,omitempty"` // set for Skipped steps when a near match exists
}

// Step is one anchored edit.
type Step interface {
	Name() string
	Apply(content string) (string, Result)
}

// InsertBefore inserts Text immediately before the first occurrence of
// Anchor. Present marks the change as already applied.
type InsertBefore struct {
	Label   string
	Anchor  string
	Text    string
	Present string
}

func (s InsertBefore) Name() string { return s.Label }

func (s InsertBefore) Apply(content string) (string, Result) {
	if s.Present != "" && strings.Contains(content, s.Present) {
		return content, Result{Step: s.Label, Status: Unchanged}
	}
	i := strings.Index(content, s.Anchor)
	if i < 0 {
		return content, skipped(s.Label, content, s.Anchor)
	}
	return content[:i] + s.Text + content[i:], Result{Step: s.Label, Status: Applied}
}

// ReplaceLiteral replaces the first occurrence of Old with New. If New is
// already in the buffer the step is Unchanged; New may contain Old.
type ReplaceLiteral struct {
	Label string
	Old   string
	New   string
}

func (s ReplaceLiteral) Name() string { return s.Label }

func (s ReplaceLiteral) Apply(content string) (string, Result) {
	if strings.Contains(content, s.New) {
		return content, Result{Step: s.Label, Status: Unchanged}
	}
	if !strings.Contains(content, s.Old) {
		return content, skipped(s.Label, content, s.Old)
	}
	return strings.Replace(content, s.Old, s.New, 1), Result{Step: s.Label, Status: Applied}
}

// ReplaceRegexp expands Replacement for the first match of Pattern.
// Replacement uses regexp.Expand syntax (${1}); build it with Literal for
// fixed text. Hint, if set, is the text searched for a near match when the
// pattern does not match.
type ReplaceRegexp struct {
	Label       string
	Pattern     *regexp.Regexp
	Replacement string
	Present     string
	Hint        string
}

func (s ReplaceRegexp) Name() string { return s.Label }

func (s ReplaceRegexp) Apply(content string) (string, Result) {
	if s.Present != "" && strings.Contains(content, s.Present) {
		return content, Result{Step: s.Label, Status: Unchanged}
	}
	m := s.Pattern.FindStringSubmatchIndex(content)
	if m == nil {
		return content, skipped(s.Label, content, s.Hint)
	}
	repl := s.Pattern.ExpandString(nil, s.Replacement, content, m)
	return content[:m[0]] + string(repl) + content[m[1]:], Result{Step: s.Label, Status: Applied}
}

// Literal escapes s for use as fixed text in a ReplaceRegexp replacement.
func Literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// DeleteLiteral removes every occurrence of Text. An absent Text is
// already the desired state, so it reports Unchanged rather than Skipped.
type DeleteLiteral struct {
	Label string
	Text  string
}

func (s DeleteLiteral) Name() string { return s.Label }

func (s DeleteLiteral) Apply(content string) (string, Result) {
	if !strings.Contains(content, s.Text) {
		return content, Result{Step: s.Label, Status: Unchanged}
	}
	return strings.ReplaceAll(content, s.Text, ""), Result{Step: s.Label, Status: Applied}
}

// FirstOf tries alternatives in order and keeps the first result that is
// not Skipped. The reported name is Label, not the alternative's.
type FirstOf struct {
	Label string
	Steps []Step
}

func (s FirstOf) Name() string { return s.Label }

func (s FirstOf) Apply(content string) (string, Result) {
	var last Result
	for _, st := range s.Steps {
		out, r := st.Apply(content)
		r.Step = s.Label
		if r.Status != Skipped {
			return out, r
		}
		if last.Hint == "" {
			last = r
		}
	}
	last.Step = s.Label
	last.Status = Skipped
	return content, last
}

func skipped(label, content, anchor string) Result {
	return Result{Step: label, Status: Skipped, Hint: Suggest(content, anchor)}
}
