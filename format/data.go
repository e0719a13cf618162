package format

import (
	"github.com/dhamidi/mdblocks/markdown"
	"github.com/dhamidi/mdblocks/markdown/inline"
)

// docData is the serialized document shape shared by the JSON and YAML
// encoders.
type docData struct {
	FrontMatter map[string]any `json:"frontMatter,omitempty" yaml:"front_matter,omitempty"`
	Blocks      []*blockData   `json:"blocks" yaml:"blocks"`
}

type blockData struct {
	Type         string            `json:"type" yaml:"type"`
	Span         *spanData         `json:"span,omitempty" yaml:"span,omitempty"`
	Level        int               `json:"level,omitempty" yaml:"level,omitempty"`
	Content      string            `json:"content,omitempty" yaml:"content,omitempty"`
	Inline       []*inlineData     `json:"inline,omitempty" yaml:"inline,omitempty"`
	Language     string            `json:"language,omitempty" yaml:"language,omitempty"`
	Lines        []string          `json:"lines,omitempty" yaml:"lines,omitempty"`
	Header       []string          `json:"header,omitempty" yaml:"header,omitempty"`
	Rows         [][]string        `json:"rows,omitempty" yaml:"rows,omitempty"`
	HeaderInline [][]*inlineData   `json:"headerInline,omitempty" yaml:"header_inline,omitempty"`
	RowsInline   [][][]*inlineData `json:"rowsInline,omitempty" yaml:"rows_inline,omitempty"`
	Ordered      bool              `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Items        [][]*blockData    `json:"items,omitempty" yaml:"items,omitempty"`
	Blocks       []*blockData      `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Alt          string            `json:"alt,omitempty" yaml:"alt,omitempty"`
	Href         string            `json:"href,omitempty" yaml:"href,omitempty"`
}

type spanData struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

type inlineData struct {
	Type     string `json:"type" yaml:"type"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
	Style    string `json:"style,omitempty" yaml:"style,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	Alt      string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Href     string `json:"href,omitempty" yaml:"href,omitempty"`
	External bool   `json:"external,omitempty" yaml:"external,omitempty"`
}

// blockType is the discriminator written for each block variant.
func blockType(b markdown.Block) string {
	switch b.(type) {
	case markdown.Heading:
		return "heading"
	case markdown.HorizontalRule:
		return "hr"
	case markdown.Paragraph:
		return "paragraph"
	case markdown.CodeBlock:
		return "code"
	case markdown.Table:
		return "table"
	case markdown.List:
		return "list"
	case markdown.Blockquote:
		return "blockquote"
	case markdown.Image:
		return "image"
	default:
		return "unknown"
	}
}

func documentToData(doc *markdown.Document) *docData {
	return &docData{
		FrontMatter: doc.FrontMatter,
		Blocks:      blocksToData(doc.Blocks),
	}
}

func blocksToData(blocks []markdown.Block) []*blockData {
	out := make([]*blockData, len(blocks))
	for i, b := range blocks {
		out[i] = blockToData(b)
	}
	return out
}

func blockToData(b markdown.Block) *blockData {
	d := &blockData{Type: blockType(b)}
	if pos := b.Position(); !pos.IsZero() {
		d.Span = &spanData{Start: pos.Start, End: pos.End}
	}

	switch b := b.(type) {
	case markdown.Heading:
		d.Level = b.Level
		d.Content = b.Content
		d.Inline = inlinesToData(b.Inline)
	case markdown.Paragraph:
		d.Content = b.Content
		d.Inline = inlinesToData(b.Inline)
	case markdown.CodeBlock:
		d.Language = b.Language
		d.Lines = b.Lines
	case markdown.Table:
		d.Header = b.Header
		d.Rows = b.Rows
		if b.HeaderInline != nil {
			d.HeaderInline = rowToData(b.HeaderInline)
		}
		for _, row := range b.RowsInline {
			d.RowsInline = append(d.RowsInline, rowToData(row))
		}
	case markdown.List:
		d.Ordered = b.Ordered
		d.Items = make([][]*blockData, len(b.Items))
		for i, item := range b.Items {
			d.Items[i] = blocksToData(item)
		}
	case markdown.Blockquote:
		d.Blocks = blocksToData(b.Content)
	case markdown.Image:
		d.Alt = b.Alt
		d.Href = b.Href
	}
	return d
}

func rowToData(cells [][]inline.Node) [][]*inlineData {
	out := make([][]*inlineData, len(cells))
	for i, cell := range cells {
		out[i] = inlinesToData(cell)
	}
	return out
}

func inlinesToData(nodes []inline.Node) []*inlineData {
	if nodes == nil {
		return nil
	}
	out := make([]*inlineData, len(nodes))
	for i, n := range nodes {
		out[i] = inlineToData(n)
	}
	return out
}

func inlineToData(n inline.Node) *inlineData {
	switch n := n.(type) {
	case inline.Text:
		return &inlineData{Type: "text", Content: n.Content, Style: n.Style.String()}
	case inline.Code:
		return &inlineData{Type: "code", Content: n.Content}
	case inline.Image:
		return &inlineData{Type: "image", Alt: n.Alt, Href: n.Href}
	case inline.Link:
		return &inlineData{Type: "link", Text: n.Text, Href: n.Href, External: n.External}
	default:
		return &inlineData{Type: "unknown"}
	}
}
