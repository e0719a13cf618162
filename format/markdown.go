package format

import (
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/mdblocks/markdown"
)

// MarkdownEncoder re-emits a document as canonical markdown: ATX headings,
// fenced code, pipe tables and '-' or 'N.' list markers. Paragraph content
// that would open another block is written after a tab. Parsing the output
// yields the same blocks, except that adjacent lists merge into one.
type MarkdownEncoder struct {
	w   io.Writer
	doc *markdown.Document
}

func NewMarkdownEncoder(w io.Writer) *MarkdownEncoder {
	return &MarkdownEncoder{w: w}
}

// PrettyPrintMarkdown parses source, including any front matter, and
// returns it in canonical form. A leading block that is not a YAML mapping
// is formatted as ordinary markdown.
func PrettyPrintMarkdown(source []byte, opts ...markdown.Option) ([]byte, error) {
	doc, _ := markdown.Parse(string(source), append(opts, markdown.WithFrontMatter())...)
	e := &MarkdownEncoder{doc: doc}
	return e.MarshalText()
}

func (e *MarkdownEncoder) Encode(doc *markdown.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *MarkdownEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.doc.FrontMatter != nil {
		sb.WriteString("---\n")
		if len(e.doc.FrontMatter) > 0 {
			fm, err := yaml.Marshal(e.doc.FrontMatter)
			if err != nil {
				return nil, err
			}
			sb.Write(fm)
		}
		sb.WriteString("---\n")
		if len(e.doc.Blocks) > 0 {
			sb.WriteString("\n")
		}
	}
	for _, line := range renderBlocks(e.doc.Blocks) {
		sb.WriteString(line + "\n")
	}
	return []byte(sb.String()), nil
}

// renderBlocks renders blocks separated by blank lines.
func renderBlocks(blocks []markdown.Block) []string {
	var lines []string
	for i, b := range blocks {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, renderBlock(b)...)
	}
	return lines
}

func renderBlock(b markdown.Block) []string {
	switch b := b.(type) {
	case markdown.Heading:
		return []string{renderHeading(b)}
	case markdown.HorizontalRule:
		// "- ---" is itself a rule, so a rule opening a list item must not
		// use dashes.
		return []string{"***"}
	case markdown.Paragraph:
		return []string{renderParagraph(b)}
	case markdown.CodeBlock:
		return renderCode(b)
	case markdown.Table:
		return renderTable(b)
	case markdown.List:
		return renderList(b)
	case markdown.Blockquote:
		return renderBlockquote(b)
	case markdown.Image:
		return []string{"![" + b.Alt + "](" + b.Href + ")"}
	default:
		return nil
	}
}

// renderParagraph writes the content on one line. Content that would open
// another block gets a leading tab, which no block rule accepts and the
// paragraph trims away.
func renderParagraph(p markdown.Paragraph) string {
	blocks := markdown.ParseBlocks(p.Content)
	if len(blocks) == 1 {
		if q, ok := blocks[0].(markdown.Paragraph); ok && q.Content == p.Content {
			return p.Content
		}
	}
	return "\t" + p.Content
}

func renderHeading(h markdown.Heading) string {
	line := strings.Repeat("#", h.Level)
	if h.Content == "" {
		return line
	}
	line += " " + h.Content
	// A trailing '#' run would be read as the closing sequence.
	if strings.HasSuffix(h.Content, "#") {
		line += " #"
	}
	return line
}

func renderCode(c markdown.CodeBlock) []string {
	fence := byte('`')
	if strings.Contains(c.Language, "`") {
		fence = '~'
	}
	n := 3
	for _, line := range c.Lines {
		if run := longestRun(line, fence); run >= n {
			n = run + 1
		}
	}
	marker := strings.Repeat(string(fence), n)

	lines := make([]string, 0, len(c.Lines)+2)
	lines = append(lines, marker+c.Language)
	lines = append(lines, c.Lines...)
	return append(lines, marker)
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}

func renderTable(t markdown.Table) []string {
	delim := make([]string, len(t.Header))
	for i := range delim {
		delim[i] = "---"
	}
	lines := []string{tableRow(t.Header), tableRow(delim)}
	for _, row := range t.Rows {
		lines = append(lines, tableRow(row))
	}
	return lines
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func renderList(l markdown.List) []string {
	var lines []string
	for i, item := range l.Items {
		marker := "- "
		if l.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		body := renderBlocks(item)
		if len(body) == 0 {
			lines = append(lines, marker)
			continue
		}
		lines = append(lines, indent(body, marker, strings.Repeat(" ", len(marker)))...)
	}
	return lines
}

func renderBlockquote(q markdown.Blockquote) []string {
	body := renderBlocks(q.Content)
	if len(body) == 0 {
		return []string{">"}
	}
	lines := make([]string, len(body))
	for i, line := range body {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return lines
}

// indent prefixes the first line with first and every following non-blank
// line with rest.
func indent(lines []string, first, rest string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			out[i] = first + line
		case line == "":
			out[i] = ""
		default:
			out[i] = rest + line
		}
	}
	return out
}
