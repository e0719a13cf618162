package format

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dhamidi/mdblocks/markdown"
	"github.com/dhamidi/mdblocks/markdown/inline"
)

// TreeEncoder prints one node per line, children indented by two spaces.
type TreeEncoder struct {
	w      io.Writer
	doc    *markdown.Document
	styles Styles
}

func NewTreeEncoder(w io.Writer, color bool) *TreeEncoder {
	return &TreeEncoder{w: w, styles: stylesFor(color)}
}

func (e *TreeEncoder) Encode(doc *markdown.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.doc.FrontMatter != nil {
		sb.WriteString(e.styles.Kind("front-matter") + "\n")
		for _, key := range slices.Sorted(maps.Keys(e.doc.FrontMatter)) {
			fmt.Fprintf(&sb, "  %s: %v\n", e.styles.Key(key), e.doc.FrontMatter[key])
		}
	}
	for _, b := range e.doc.Blocks {
		e.writeBlock(&sb, b, 0)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeBlock(sb *strings.Builder, b markdown.Block, indent int) {
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(prefix + e.styles.Kind(blockType(b)))

	switch b := b.(type) {
	case markdown.Heading:
		sb.WriteString(" " + strconv.Itoa(b.Level))
	case markdown.CodeBlock:
		if b.Language != "" {
			sb.WriteString(" " + e.styles.Code(b.Language))
		}
	case markdown.List:
		if b.Ordered {
			sb.WriteString(" ordered")
		}
	}

	if pos := b.Position(); !pos.IsZero() {
		sb.WriteString(" " + e.styles.Position(fmt.Sprintf("[%d-%d]", pos.Start, pos.End)))
	}

	switch b := b.(type) {
	case markdown.Heading:
		sb.WriteString(" " + e.styles.Heading(strconv.Quote(b.Content)) + "\n")
		e.writeInline(sb, b.Inline, indent+1)
	case markdown.Paragraph:
		sb.WriteString(" " + e.styles.Text(strconv.Quote(b.Content)) + "\n")
		e.writeInline(sb, b.Inline, indent+1)
	case markdown.CodeBlock:
		sb.WriteString("\n")
		for _, line := range b.Lines {
			sb.WriteString(prefix + "  | " + e.styles.Code(line) + "\n")
		}
	case markdown.Table:
		sb.WriteString("\n")
		sb.WriteString(prefix + "  header " + e.cells(b.Header) + "\n")
		for _, row := range b.Rows {
			sb.WriteString(prefix + "  row " + e.cells(row) + "\n")
		}
	case markdown.List:
		sb.WriteString("\n")
		for _, item := range b.Items {
			sb.WriteString(prefix + "  " + e.styles.Kind("item") + "\n")
			for _, child := range item {
				e.writeBlock(sb, child, indent+2)
			}
		}
	case markdown.Blockquote:
		sb.WriteString("\n")
		for _, child := range b.Content {
			e.writeBlock(sb, child, indent+1)
		}
	case markdown.Image:
		sb.WriteString(" " + e.styles.Text(strconv.Quote(b.Alt)) + " " + e.styles.Link(b.Href) + "\n")
	default:
		sb.WriteString("\n")
	}
}

func (e *TreeEncoder) cells(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = e.styles.Text(strconv.Quote(c))
	}
	return strings.Join(quoted, " | ")
}

func (e *TreeEncoder) writeInline(sb *strings.Builder, nodes []inline.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	for _, n := range nodes {
		switch n := n.(type) {
		case inline.Text:
			kind := "text"
			if n.Style != inline.Plain {
				kind = n.Style.String()
			}
			sb.WriteString(prefix + e.styles.Kind(kind) + " " + e.styles.Text(strconv.Quote(n.Content)) + "\n")
		case inline.Code:
			sb.WriteString(prefix + e.styles.Kind("code") + " " + e.styles.Code(strconv.Quote(n.Content)) + "\n")
		case inline.Image:
			sb.WriteString(prefix + e.styles.Kind("image") + " " + e.styles.Text(strconv.Quote(n.Alt)) + " " + e.styles.Link(n.Href) + "\n")
		case inline.Link:
			kind := "link"
			if n.External {
				kind = "external-link"
			}
			sb.WriteString(prefix + e.styles.Kind(kind) + " " + e.styles.Text(strconv.Quote(n.Text)) + " " + e.styles.Link(n.Href) + "\n")
		}
	}
}
