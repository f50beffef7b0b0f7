package pbxproj

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// maxHintLine caps how much of a matched line is quoted back in a hint.
const maxHintLine = 120

// hintLimit returns the largest edit distance still worth suggesting for
// a target of n bytes.
func hintLimit(n int) int {
	if l := n / 3; l > 3 {
		return l
	}
	return 3
}

// Suggest finds the content line closest to the first non-blank line of
// anchor and describes it, or returns "" if nothing is close enough.
// Lines are compared with surrounding whitespace trimmed, since
// reindentation is the usual reason an anchor stops matching.
func Suggest(content, anchor string) string {
	target := firstLine(anchor)
	if target == "" {
		return ""
	}
	limit := hintLimit(len(target))

	best, bestLine, bestText := limit+1, 0, ""
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || abs(len(line)-len(target)) > limit {
			continue
		}
		d := levenshtein.ComputeDistance(target, line)
		if d < best {
			best, bestLine, bestText = d, i+1, line
			if d == 0 {
				break
			}
		}
	}
	if bestLine == 0 {
		return ""
	}
	if len(bestText) > maxHintLine {
		n := maxHintLine
		for n > 0 && !utf8.RuneStart(bestText[n]) {
			n--
		}
		bestText = bestText[:n] + "..."
	}
	return fmt.Sprintf("closest match at line %d: %q", bestLine, bestText)
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
