package pbxproj

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mavwarf/voxa-build/internal/filelock"
)

func TestInsertBefore(t *testing.T) {
	s := InsertBefore{Label: "ins", Anchor: "/* B */", Text: "x\n", Present: "x\n/* B */"}

	out, r := s.Apply("a\n/* B */\nc")
	assert.Equal(t, "a\nx\n/* B */\nc", out)
	assert.Equal(t, Applied, r.Status)

	again, r := s.Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, Unchanged, r.Status)

	missing, r := s.Apply("nothing here")
	assert.Equal(t, "nothing here", missing)
	assert.Equal(t, Skipped, r.Status)
}

func TestInsertBeforeFirstOccurrenceOnly(t *testing.T) {
	s := InsertBefore{Label: "ins", Anchor: "M", Text: "+"}
	out, _ := s.Apply("aMbM")
	assert.Equal(t, "a+MbM", out)
}

func TestReplaceLiteral(t *testing.T) {
	s := ReplaceLiteral{Label: "rep", Old: "one;", New: "one;\ntwo;"}

	out, r := s.Apply("x\none;\ny")
	assert.Equal(t, "x\none;\ntwo;\ny", out)
	assert.Equal(t, Applied, r.Status)

	// New contains Old; a rerun must not append a second copy.
	again, r := s.Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, Unchanged, r.Status)

	_, r = s.Apply("x\ny")
	assert.Equal(t, Skipped, r.Status)
}

func TestReplaceRegexp(t *testing.T) {
	s := ReplaceRegexp{
		Label:       "re",
		Pattern:     regexp.MustCompile(`(children = \(\s*)A,`),
		Replacement: "${1}" + Literal("A,\n\tB$(X),"),
		Present:     "B$(X),",
		Hint:        "children = (",
	}

	out, r := s.Apply("children = (\n\tA,\n)")
	assert.Equal(t, "children = (\n\tA,\n\tB$(X),\n)", out)
	assert.Equal(t, Applied, r.Status)

	again, r := s.Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, Unchanged, r.Status)
}

func TestReplaceRegexpFirstMatchOnly(t *testing.T) {
	s := ReplaceRegexp{Label: "re", Pattern: regexp.MustCompile(`(a)`), Replacement: "${1}b"}
	out, _ := s.Apply("a a")
	assert.Equal(t, "ab a", out)
}

func TestReplaceRegexpSkippedHint(t *testing.T) {
	s := ReplaceRegexp{
		Label:   "re",
		Pattern: regexp.MustCompile(`never`),
		Hint:    "B1 /* Assets.xcassets in Resources */,",
	}
	content := "files = (\n\t\t\t\tB1 /* Assets.xcasets in Resources */,\n);"
	out, r := s.Apply(content)
	assert.Equal(t, content, out)
	assert.Equal(t, Skipped, r.Status)
	assert.Contains(t, r.Hint, "line 2")
}

func TestDeleteLiteral(t *testing.T) {
	s := DeleteLiteral{Label: "del", Text: "\n\tKEY = V;"}

	out, r := s.Apply("{\n\tKEY = V;\n\tA = 1;\n}\n{\n\tKEY = V;\n}")
	assert.Equal(t, "{\n\tA = 1;\n}\n{\n}", out)
	assert.Equal(t, Applied, r.Status)

	again, r := s.Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, Unchanged, r.Status)
}

func TestFirstOf(t *testing.T) {
	s := FirstOf{Label: "either", Steps: []Step{
		InsertBefore{Label: "a", Anchor: "END", Text: "1"},
		InsertBefore{Label: "b", Anchor: "BEGIN", Text: "2"},
	}}

	out, r := s.Apply("xBEGINy")
	assert.Equal(t, "x2BEGINy", out)
	assert.Equal(t, Applied, r.Status)
	assert.Equal(t, "either", r.Step)

	out, r = s.Apply("xENDyBEGIN")
	assert.Equal(t, "x1ENDyBEGIN", out)
	assert.Equal(t, Applied, r.Status)

	out, r = s.Apply("none")
	assert.Equal(t, "none", out)
	assert.Equal(t, Skipped, r.Status)
	assert.Equal(t, "either", r.Step)
}

func TestPlanOutcome(t *testing.T) {
	ins := InsertBefore{Label: "ins", Anchor: "A", Text: "+", Present: "+A"}
	del := DeleteLiteral{Label: "del", Text: "Z"}

	tests := []struct {
		name    string
		content string
		want    Outcome
		changed bool
	}{
		{"all applied", "AZ", Success, true},
		{"already done", "+A", UpToDate, false},
		{"anchor missing", "Z", Partial, true},
		{"anchor missing nothing applied", "Q", Failure, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rep := Plan{Name: "p", Steps: []Step{ins, del}}.Run(tt.content)
			assert.Equal(t, tt.want, rep.Outcome)
			assert.Equal(t, tt.changed, rep.Changed())
		})
	}

	_, rep := Plan{Name: "p", Steps: []Step{ins}}.Run("Q")
	assert.Equal(t, Failure, rep.Outcome)
	assert.Equal(t, 1, rep.Count(Skipped))
}

func TestSuggest(t *testing.T) {
	content := "line one\n\t\tbuildPhases = (\n\t\t\tE1 /* Sources */,\n"
	assert.Equal(t, `closest match at line 3: "E1 /* Sources */,"`, Suggest(content, "\n    E1 /* Source */,"))
	assert.Equal(t, "", Suggest(content, "completely unrelated anchor text here"))
	assert.Equal(t, "", Suggest(content, "   \n  "))
}

func TestSuggestTruncatesOnRuneBoundary(t *testing.T) {
	line := "x" + strings.Repeat("é", 100)
	hint := Suggest("{\n"+line+"\n}\n", line)
	assert.True(t, utf8.ValidString(hint), hint)
	assert.NotContains(t, hint, `\x`)
	assert.Equal(t, `closest match at line 2: "x`+strings.Repeat("é", 59)+`..."`, hint)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ok      bool
	}{
		{"empty", "", true},
		{"balanced", "// !$*UTF8*$!\n{\n\ta = (\n\t\tb,\n\t);\n}\n", true},
		{"braces in string", `{ s = "}{)(" ; }`, true},
		{"escaped quote", `{ s = "a \" } b"; }`, true},
		{"braces in comment", "{ /* } ) */ }", true},
		{"extra close", "{ } }", false},
		{"unclosed", "{ a = ( b, );", false},
		{"mismatched", "{ a = ( b, }; )", false},
		{"unterminated string", `{ s = "abc; }`, false},
		{"unterminated comment", "{ /* abc }", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.content)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.pbxproj")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

var addEntry = Plan{Name: "add", Steps: []Step{
	InsertBefore{Label: "entry", Anchor: "\t);", Text: "\t\tB,\n", Present: "\t\tB,\n"},
}}

func TestPatchFile(t *testing.T) {
	path := writeProject(t, "{\n\tlist = (\n\t\tA,\n\t);\n}\n")

	rep, err := PatchFile(path, addEntry, Options{})
	require.NoError(t, err)
	assert.Equal(t, Success, rep.Outcome)
	assert.Equal(t, "{\n\tlist = (\n\t\tA,\n\t\tB,\n\t);\n}\n", readFile(t, path))

	rep, err = PatchFile(path, addEntry, Options{})
	require.NoError(t, err)
	assert.Equal(t, UpToDate, rep.Outcome)

	lk, err := filelock.Acquire(path)
	require.NoError(t, err, "lock should be released")
	require.NoError(t, lk.Release())
}

func TestPatchFileDryRun(t *testing.T) {
	orig := "{\n\tlist = (\n\t\tA,\n\t);\n}\n"
	path := writeProject(t, orig)

	rep, err := PatchFile(path, addEntry, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, Success, rep.Outcome)
	assert.Equal(t, orig, readFile(t, path))
}

func TestPatchFileRefusesInvalidResult(t *testing.T) {
	orig := "{\n\tlist = (\n\t\tA,\n\t);\n}\n"
	path := writeProject(t, orig)

	broken := Plan{Name: "broken", Steps: []Step{
		InsertBefore{Label: "brace", Anchor: "}", Text: "{"},
	}}
	rep, err := PatchFile(path, broken, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, Failure, rep.Outcome, "nothing was written")
	assert.Equal(t, 1, rep.Count(Applied))
	assert.Equal(t, orig, readFile(t, path))
}

func TestPatchFileMissing(t *testing.T) {
	_, err := PatchFile(filepath.Join(t.TempDir(), "missing.pbxproj"), addEntry, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPatchFileNoAnchorsLeavesFile(t *testing.T) {
	orig := "// nothing to patch\n{\n}\n"
	path := writeProject(t, orig)

	rep, err := PatchFile(path, addEntry, Options{})
	require.NoError(t, err)
	assert.Equal(t, Failure, rep.Outcome)
	assert.Equal(t, orig, readFile(t, path))
}

func TestStatusText(t *testing.T) {
	for s, want := range map[Status]string{Applied: "applied", Unchanged: "unchanged", Skipped: "skipped"} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
	assert.True(t, strings.HasPrefix(Partial.String(), "part"))
}
