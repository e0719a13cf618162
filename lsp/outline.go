package lsp

import (
	"strconv"
	"strings"

	"github.com/dhamidi/mdblocks/markdown"
)

type SymbolKind int

const (
	SymbolHeading SymbolKind = iota
	SymbolCode
	SymbolTable
)

// Symbol is an outline entry. Start and End are 1-based inclusive lines.
type Symbol struct {
	Name     string
	Detail   string
	Kind     SymbolKind
	Level    int
	Start    int
	End      int
	Children []*Symbol
}

// Outline builds the heading hierarchy of doc. A heading's section runs to
// the line before the next heading of the same or a higher level, or to
// lastLine. Code blocks and tables, including those inside lists and
// quotes, become leaves of the section they appear in. The document must
// have been parsed with positions.
func Outline(doc *markdown.Document, lastLine int) []*Symbol {
	var roots []*Symbol
	var stack []*Symbol

	attach := func(s *Symbol) {
		if len(stack) == 0 {
			roots = append(roots, s)
			return
		}
		top := stack[len(stack)-1]
		top.Children = append(top.Children, s)
	}

	var leaves func(blocks []markdown.Block)
	leaves = func(blocks []markdown.Block) {
		for _, b := range blocks {
			switch b := b.(type) {
			case markdown.CodeBlock:
				attach(codeSymbol(b))
			case markdown.Table:
				attach(tableSymbol(b))
			case markdown.List:
				for _, item := range b.Items {
					leaves(item)
				}
			case markdown.Blockquote:
				leaves(b.Content)
			}
		}
	}

	for _, b := range doc.Blocks {
		h, ok := b.(markdown.Heading)
		if !ok {
			leaves([]markdown.Block{b})
			continue
		}
		start := h.Position().Start
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack[len(stack)-1].End = max(start-1, stack[len(stack)-1].Start)
			stack = stack[:len(stack)-1]
		}
		s := &Symbol{
			Name:   headingName(h),
			Detail: strings.Repeat("#", h.Level),
			Kind:   SymbolHeading,
			Level:  h.Level,
			Start:  start,
			End:    h.Position().End,
		}
		attach(s)
		stack = append(stack, s)
	}
	for _, s := range stack {
		s.End = max(lastLine, s.End)
	}
	return roots
}

func headingName(h markdown.Heading) string {
	if strings.TrimSpace(h.Content) == "" {
		return strings.Repeat("#", h.Level)
	}
	return h.Content
}

func codeSymbol(c markdown.CodeBlock) *Symbol {
	name := "code"
	if c.Language != "" {
		name += " " + c.Language
	}
	return &Symbol{
		Name:   name,
		Detail: strconv.Itoa(len(c.Lines)) + " lines",
		Kind:   SymbolCode,
		Start:  c.Pos.Start,
		End:    c.Pos.End,
	}
}

func tableSymbol(t markdown.Table) *Symbol {
	name := strings.Join(t.Header, " | ")
	if strings.TrimSpace(name) == "" {
		name = "table"
	}
	return &Symbol{
		Name:   name,
		Detail: strconv.Itoa(len(t.Rows)) + " rows",
		Kind:   SymbolTable,
		Start:  t.Pos.Start,
		End:    t.Pos.End,
	}
}

// Fold is a foldable line range, 1-based inclusive.
type Fold struct {
	Start int
	End   int
}

// Folds returns one range per block spanning more than one line, recursing
// into list items and quotes, followed by one range per heading section.
func Folds(doc *markdown.Document, lastLine int) []Fold {
	var folds []Fold
	var walk func(blocks []markdown.Block)
	walk = func(blocks []markdown.Block) {
		for _, b := range blocks {
			if pos := b.Position(); pos.End > pos.Start {
				folds = append(folds, Fold{Start: pos.Start, End: pos.End})
			}
			switch b := b.(type) {
			case markdown.List:
				for _, item := range b.Items {
					walk(item)
				}
			case markdown.Blockquote:
				walk(b.Content)
			}
		}
	}
	walk(doc.Blocks)

	var sections func(symbols []*Symbol)
	sections = func(symbols []*Symbol) {
		for _, s := range symbols {
			if s.Kind != SymbolHeading {
				continue
			}
			if s.End > s.Start {
				folds = append(folds, Fold{Start: s.Start, End: s.End})
			}
			sections(s.Children)
		}
	}
	sections(Outline(doc, lastLine))
	return folds
}
