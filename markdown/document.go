package markdown

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed markdown file. FrontMatter is nil unless
// WithFrontMatter was given and the source opens with a front matter block.
type Document struct {
	FrontMatter map[string]any
	Blocks      []Block
}

// Parse parses source into a Document. The returned Document is never nil.
// A leading block that looks like front matter but does not decode as a
// YAML mapping is parsed as ordinary blocks, and the decode error is
// returned alongside the Document.
func Parse(source string, opts ...Option) (*Document, error) {
	p := newParser(opts)
	lines := strings.Split(source, "\n")
	src := NewLineSourceLines(lines)
	doc := &Document{}

	var fmErr error
	if p.frontMatter {
		if end := frontMatterEnd(lines); end > 0 {
			fm, err := decodeFrontMatter(lines[1:end])
			if err != nil {
				log.Debug("front matter rejected", "error", err)
				fmErr = fmt.Errorf("front matter: %w", err)
			} else {
				doc.FrontMatter = fm
				// Skip on the raw source so block line numbers stay absolute.
				for range end + 1 {
					src.Advance()
				}
			}
		}
	}

	doc.Blocks = slices.Collect(Blocks(src, opts...))
	return doc, fmErr
}

// frontMatterEnd returns the index of the line closing a front matter block
// opened on the first line, or -1.
func frontMatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != "---" {
		return -1
	}
	for i := 1; i < len(lines); i++ {
		switch strings.TrimRight(lines[i], " \t\r") {
		case "---", "...":
			return i
		}
	}
	return -1
}

func decodeFrontMatter(lines []string) (map[string]any, error) {
	fm := map[string]any{}
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &fm); err != nil {
		return nil, err
	}
	if fm == nil {
		fm = map[string]any{}
	}
	log.Debug("front matter", "keys", len(fm))
	return fm, nil
}
