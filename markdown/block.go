// Package markdown parses lightweight markup into a tree of block nodes.
//
// The parser recognizes headings, thematic breaks, paragraphs, indented and
// fenced code, pipe tables, ordered and unordered lists and blockquotes.
// It produces structure only; inline spans are handled by the inline
// subpackage and attached by ParseAll.
package markdown

import "github.com/dhamidi/mdblocks/markdown/inline"

// Block is implemented by all block nodes.
type Block interface {
	Position() Span
	block()
}

// Span is the inclusive range of 1-based source lines covered by a block.
// It is zero unless the parser runs WithPositions.
type Span struct {
	Start int
	End   int
}

func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Heading is an ATX (#) or setext (underlined) heading.
type Heading struct {
	Level   int // 1-6
	Content string
	Inline  []inline.Node // set by ParseAll
	Pos     Span
}

func (h Heading) Position() Span { return h.Pos }
func (Heading) block()           {}

// HorizontalRule is a thematic break.
type HorizontalRule struct {
	Pos Span
}

func (h HorizontalRule) Position() Span { return h.Pos }
func (HorizontalRule) block()           {}

// Paragraph holds trimmed source lines joined by single spaces.
type Paragraph struct {
	Content string
	Inline  []inline.Node // set by ParseAll
	Pos     Span
}

func (p Paragraph) Position() Span { return p.Pos }
func (Paragraph) block()           {}

// CodeBlock is an indented or fenced code block. Language is the fence's
// info string and is empty for indented code.
type CodeBlock struct {
	Lines    []string
	Language string
	Pos      Span
}

func (c CodeBlock) Position() Span { return c.Pos }
func (CodeBlock) block()           {}

// Table is a pipe table. Rows are not checked against the header width.
type Table struct {
	Header []string
	Rows   [][]string

	// Inline content of each cell, set by ParseAll.
	HeaderInline [][]inline.Node
	RowsInline   [][][]inline.Node

	Pos Span
}

func (t Table) Position() Span { return t.Pos }
func (Table) block()           {}

// Item is the body of a list item.
type Item []Block

// List is an ordered or unordered list.
type List struct {
	Ordered bool
	Items   []Item
	Pos     Span
}

func (l List) Position() Span { return l.Pos }
func (List) block()           {}

// Blockquote holds the blocks parsed from its '>'-stripped lines.
type Blockquote struct {
	Content []Block
	Pos     Span
}

func (b Blockquote) Position() Span { return b.Pos }
func (Blockquote) block()           {}

// Image replaces a paragraph consisting of a single image. Only ParseAll
// produces it.
type Image struct {
	Alt  string
	Href string
	Pos  Span
}

func (i Image) Position() Span { return i.Pos }
func (Image) block()           {}
