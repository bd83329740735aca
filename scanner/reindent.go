package scanner

import "strings"

// leadingWhitespace returns the number of leading space and tab bytes in s.
func leadingWhitespace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

// Reindent removes the minimum common leading whitespace shared by all
// non-blank lines of s. Blank lines are reduced to empty lines. A trailing
// newline is not preserved, matching line-for-line reassembly of the input.
func Reindent(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := leadingWhitespace(line); margin < 0 || n < margin {
			margin = n
		}
	}
	if margin <= 0 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) > margin {
			out[i] = line[margin:]
		} else {
			out[i] = ""
		}
	}
	return strings.Join(out, "\n")
}

// Normalize prepares a span of template text for scanning: it strips the
// common leading margin and drops a single leading blank line, so that a
// template indented to match its surrounding declaration compiles as
// left-aligned text. The returned count is the number of dropped leading
// lines (0 or 1), which callers add to their line-number base.
func Normalize(s string) (string, int) {
	text := Reindent(s)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 && strings.TrimSpace(text[:idx]) == "" {
		return text[idx+1:], 1
	}
	return text, 0
}
