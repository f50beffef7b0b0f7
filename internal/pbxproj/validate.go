package pbxproj

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when a buffer is not structurally sound.
var ErrInvalid = errors.New("invalid project file")

// Validate checks that braces and parentheses balance outside quoted
// strings and comments, and that every string and comment is closed.
// It is not a full plist parser; it catches the damage a misplaced text
// edit does.
func Validate(content string) error {
	type open struct {
		ch   byte
		line int
	}
	var stack []open
	line := 1

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\n':
			line++
		case c == '"':
			start := line
			i++
			for ; i < len(content) && content[i] != '"'; i++ {
				switch content[i] {
				case '\\':
					i++
					if i < len(content) && content[i] == '\n' {
						line++
					}
				case '\n':
					line++
				}
			}
			if i >= len(content) {
				return fmt.Errorf("%w: unterminated string starting at line %d", ErrInvalid, start)
			}
		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			start := line
			i += 2
			for ; i+1 < len(content) && !(content[i] == '*' && content[i+1] == '/'); i++ {
				if content[i] == '\n' {
					line++
				}
			}
			if i+1 >= len(content) {
				return fmt.Errorf("%w: unterminated comment starting at line %d", ErrInvalid, start)
			}
			i++
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			for i+1 < len(content) && content[i+1] != '\n' {
				i++
			}
		case c == '{' || c == '(':
			stack = append(stack, open{c, line})
		case c == '}' || c == ')':
			want := byte('{')
			if c == ')' {
				want = '('
			}
			if len(stack) == 0 {
				return fmt.Errorf("%w: unexpected %q at line %d", ErrInvalid, c, line)
			}
			top := stack[len(stack)-1]
			if top.ch != want {
				return fmt.Errorf("%w: %q at line %d closes %q from line %d", ErrInvalid, c, line, top.ch, top.line)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("%w: %q from line %d is never closed", ErrInvalid, top.ch, top.line)
	}
	return nil
}
