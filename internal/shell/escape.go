package shell

import "strings"

// pbxEscaper escapes the characters Xcode escapes when it writes a quoted
// string value into project.pbxproj.
var pbxEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

// QuotePBX returns s as a double-quoted project.pbxproj string literal.
func QuotePBX(s string) string {
	return `"` + pbxEscaper.Replace(s) + `"`
}

// PBXString returns s bare when every byte is valid in an unquoted
// project.pbxproj string, and quoted with QuotePBX otherwise.
func PBXString(s string) string {
	if s == "" {
		return QuotePBX(s)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("_$+/:.-", c) >= 0:
		default:
			return QuotePBX(s)
		}
	}
	return s
}

// EscapeDoubleQuoted escapes s for embedding inside a POSIX shell
// double-quoted word. $ is left alone so build settings like
// ${SRCROOT} still expand when the script runs.
func EscapeDoubleQuoted(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`").Replace(s)
}

// CopyCommand returns a newline-terminated /bin/sh command copying src to dst.
func CopyCommand(src, dst string) string {
	return `cp "` + EscapeDoubleQuoted(src) + `" "` + EscapeDoubleQuoted(dst) + `"` + "\n"
}
