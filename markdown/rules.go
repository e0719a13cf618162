package markdown

import (
	"regexp"
	"strings"
)

var (
	// Up to 3 leading spaces, 1-6 '#', then nothing or a space and the
	// content. A closing run of '#' only counts after a space.
	atxHeadingPattern = regexp.MustCompile(`^ {0,3}(#{1,6})( .*?)??( #*)? *$`)

	setextPattern = regexp.MustCompile(`^ {0,3}(=+|-+) *$`)

	// Three or more of the same '-', '_' or '*', optionally separated by spaces.
	thematicBreakPattern = regexp.MustCompile(`^ {0,3}((- *){3,}|(_ *){3,}|(\* *){3,})$`)

	listMarkerPattern = regexp.MustCompile(`^( {0,3})([-+*]|[0-9]{1,9}[.)])( +)(.*)$`)

	tableDelimiterPattern = regexp.MustCompile(`^ {0,3}\|? *-+ *(\| *-+ *)*\|? *$`)

	fenceOpenPattern = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})(.*)$")

	blockquotePattern = regexp.MustCompile(`^ {0,3}> ?(.*)$`)
)

const codeIndent = "    "

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// atxHeading returns the level and trimmed content of an ATX heading line.
func atxHeading(s string) (level int, content string, ok bool) {
	m := atxHeadingPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), strings.TrimSpace(m[2]), true
}

// setextLevel returns 1 for a '=' underline, 2 for a '-' underline and 0
// otherwise.
func setextLevel(s string) int {
	m := setextPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	if m[1][0] == '=' {
		return 1
	}
	return 2
}

func isThematicBreak(s string) bool {
	return thematicBreakPattern.MatchString(s)
}

// listMarker describes a matched list item marker line.
type listMarker struct {
	ordered bool
	width   int    // columns taken by indent, marker and following spaces
	rest    string // item text after the prefix
}

// item returns the marker line with its prefix replaced by spaces.
func (m listMarker) item() string {
	return strings.Repeat(" ", m.width) + m.rest
}

func matchListMarker(s string) (listMarker, bool) {
	m := listMarkerPattern.FindStringSubmatch(s)
	if m == nil {
		return listMarker{}, false
	}
	indent, marker, spaces, rest := m[1], m[2], m[3], m[4]

	lm := listMarker{
		ordered: marker[0] >= '0' && marker[0] <= '9',
		width:   len(indent) + len(marker) + len(spaces),
		rest:    rest,
	}
	// Five or more spaces, or nothing after the marker: one space belongs to
	// the prefix and the rest is literal indentation of the item text.
	if len(spaces) > 4 || rest == "" {
		lm.width = len(indent) + len(marker) + 1
		lm.rest = spaces[1:] + rest
	}
	return lm, true
}

func isTableDelimiter(s string) bool {
	return strings.Contains(s, "|") && tableDelimiterPattern.MatchString(s)
}

// fenceOpen matches an opening code fence and returns the fence character,
// its length and the trimmed info string.
func fenceOpen(s string) (fence byte, n int, info string, ok bool) {
	m := fenceOpenPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, "", false
	}
	fence = m[1][0]
	info = strings.TrimSpace(m[2])
	if fence == '`' && strings.Contains(info, "`") {
		return 0, 0, "", false
	}
	return fence, len(m[1]), info, true
}

// isFenceClose reports whether s closes a fence of at least n fence
// characters.
func isFenceClose(s string, fence byte, n int) bool {
	s = strings.TrimRight(s, " ")
	trimmed := strings.TrimLeft(s, " ")
	if len(s)-len(trimmed) > 3 || len(trimmed) < n {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != fence {
			return false
		}
	}
	return true
}

// blockquoteBody returns the text after a '>' marker.
func blockquoteBody(s string) (string, bool) {
	m := blockquotePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// interruptsLazyContinuation reports whether a line without a '>' marker
// ends a blockquote instead of continuing its last paragraph.
func interruptsLazyContinuation(s string) bool {
	if isBlank(s) || isThematicBreak(s) || strings.HasPrefix(s, codeIndent) {
		return true
	}
	if _, _, ok := atxHeading(s); ok {
		return true
	}
	_, ok := matchListMarker(s)
	return ok
}
