package inline

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	tokenPattern = regexp.MustCompile("`[^`]+`" + `|\*\*[^*]+\*\*|\*[^*]+\*|!?\[[^\]]+\]\([^)]+\)`)
	linkPattern  = regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)$`)
)

// Parse scans raw left to right for code spans, bold, italic, images and
// links. Text between tokens becomes plain Text nodes; empty gaps are
// dropped.
func Parse(raw string) []Node {
	var nodes []Node
	pos := 0
	for _, loc := range tokenPattern.FindAllStringIndex(raw, -1) {
		if loc[0] > pos {
			nodes = append(nodes, Text{Content: raw[pos:loc[0]]})
		}
		nodes = append(nodes, token(raw[loc[0]:loc[1]]))
		pos = loc[1]
	}
	if pos < len(raw) {
		nodes = append(nodes, Text{Content: raw[pos:]})
	}
	return nodes
}

func token(tok string) Node {
	switch {
	case strings.HasPrefix(tok, "`"):
		return Code{Content: tok[1 : len(tok)-1]}
	case strings.HasPrefix(tok, "**"):
		return Text{Content: tok[2 : len(tok)-2], Style: Bold}
	case strings.HasPrefix(tok, "*"):
		return Text{Content: tok[1 : len(tok)-1], Style: Italic}
	case strings.HasPrefix(tok, "!"):
		text, href := splitLink(tok[1:])
		return Image{Alt: text, Href: href}
	default:
		text, href := splitLink(tok)
		return Link{Text: text, Href: href, External: isExternal(href)}
	}
}

// splitLink splits "[text](href)". The token pattern only ever hands it
// well-formed candidates, so a mismatch is a bug.
func splitLink(tok string) (text, href string) {
	m := linkPattern.FindStringSubmatch(tok)
	if m == nil {
		panic(fmt.Sprintf("inline: malformed link token %q", tok))
	}
	return m[1], m[2]
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}
