package markdown

import (
	"iter"
	"slices"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("mdblocks.markdown")

const defaultMaxDepth = 1000

type Option func(*parser)

// WithPositions records the source line span of every block.
func WithPositions() Option {
	return func(p *parser) {
		p.positions = true
	}
}

// WithInline runs the inline parser over every leaf after block parsing.
func WithInline() Option {
	return func(p *parser) {
		p.inline = true
	}
}

// WithFrontMatter makes Parse read a leading YAML front matter block.
func WithFrontMatter() Option {
	return func(p *parser) {
		p.frontMatter = true
	}
}

// WithMaxDepth limits how deep lists and blockquotes may nest. Beyond the
// limit their markers are treated as ordinary text.
func WithMaxDepth(n int) Option {
	return func(p *parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

type parser struct {
	positions   bool
	inline      bool
	frontMatter bool
	maxDepth    int
	root        *tracker
}

func newParser(opts []Option) *parser {
	p := &parser{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *parser) span(start, end int) Span {
	if !p.positions {
		return Span{}
	}
	return Span{Start: start, End: end}
}

// end is the last non-blank source line consumed so far.
func (p *parser) end() int {
	return p.root.last
}

// Blocks returns the block sequence read from c. The sequence consumes c
// and cannot be restarted.
func Blocks(c Cursor, opts ...Option) iter.Seq[Block] {
	p := newParser(opts)
	p.root = &tracker{src: c}
	if !p.inline {
		return p.blocks(p.root, 0)
	}
	return func(yield func(Block) bool) {
		for b := range p.blocks(p.root, 0) {
			if !yield(enrich(b)) {
				return
			}
		}
	}
}

// ParseBlocks parses the block structure of source.
func ParseBlocks(source string, opts ...Option) []Block {
	return slices.Collect(Blocks(NewLineSource(source), opts...))
}

// ParseAll parses the block structure of source and runs the inline parser
// over every heading, paragraph and table cell.
func ParseAll(source string, opts ...Option) []Block {
	return ParseBlocks(source, append(opts, WithInline())...)
}

// pending is a paragraph still collecting lines.
type pending struct {
	lines []string
	start int
	end   int
}

func (pp *pending) content() string {
	return strings.Join(pp.lines, " ")
}

func (p *parser) blocks(c Cursor, depth int) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		var para *pending

		flush := func() bool {
			if para == nil {
				return true
			}
			b := Paragraph{Content: para.content(), Pos: p.span(para.start, para.end)}
			para = nil
			return yield(b)
		}

		for {
			line, ok := c.Advance()
			if !ok {
				break
			}
			s := line.Text
			nested := depth < p.maxDepth

			if isBlank(s) {
				if !flush() {
					return
				}
				continue
			}

			if level, content, ok := atxHeading(s); ok {
				if !flush() || !yield(Heading{Level: level, Content: content, Pos: p.span(line.Num, line.Num)}) {
					return
				}
				continue
			}

			if para != nil {
				if level := setextLevel(s); level > 0 {
					h := Heading{Level: level, Content: para.content(), Pos: p.span(para.start, line.Num)}
					para = nil
					if !yield(h) {
						return
					}
					continue
				}
			}

			if isThematicBreak(s) {
				if !flush() || !yield(HorizontalRule{Pos: p.span(line.Num, line.Num)}) {
					return
				}
				continue
			}

			if m, ok := matchListMarker(s); ok && nested {
				if !flush() || !yield(p.list(c, line, m, depth)) {
					return
				}
				continue
			}

			if para != nil && isTableDelimiter(s) {
				t := p.table(c, para)
				para = nil
				if !yield(t) {
					return
				}
				continue
			}

			if para == nil && strings.HasPrefix(s, codeIndent) {
				if !yield(p.indentedCode(c, line)) {
					return
				}
				continue
			}

			if fence, n, info, ok := fenceOpen(s); ok {
				if !flush() || !yield(p.fencedCode(c, line, fence, n, info)) {
					return
				}
				continue
			}

			if _, ok := blockquoteBody(s); ok && nested {
				if !flush() || !yield(p.blockquote(c, line, depth)) {
					return
				}
				continue
			}

			if para == nil {
				para = &pending{start: line.Num}
			}
			para.lines = append(para.lines, strings.TrimSpace(s))
			para.end = line.Num
		}

		flush()
	}
}

// list reads consecutive items starting with the marker line first. Each
// item body is the stream of lines indented by the item's prefix width,
// parsed recursively.
func (p *parser) list(c Cursor, first Line, m listMarker, depth int) List {
	log.Debug("list", "line", first.Num, "ordered", m.ordered, "depth", depth)

	list := List{Ordered: m.ordered}
	line := first
	for {
		body := NewLookahead(NewReplay(c, Line{Num: line.Num, Text: m.item()}), stripIndent(m.width))
		list.Items = append(list.Items, Item(slices.Collect(p.blocks(body, depth+1))))

		next, ok := c.Peek()
		if !ok || isThematicBreak(next.Text) {
			break
		}
		if m, ok = matchListMarker(next.Text); !ok {
			break
		}
		c.Advance()
		line = next
	}
	list.Pos = p.span(first.Num, p.end())
	return list
}

// stripIndent accepts blank lines and lines indented by at least width
// spaces, removing the indentation.
func stripIndent(width int) func(string) (string, bool) {
	prefix := strings.Repeat(" ", width)
	return func(s string) (string, bool) {
		if isBlank(s) {
			return "", true
		}
		if !strings.HasPrefix(s, prefix) {
			return "", false
		}
		return s[width:], true
	}
}

// table turns the pending paragraph into a header row and reads data rows
// up to the next blank line.
func (p *parser) table(c Cursor, header *pending) Table {
	t := Table{Header: TableFields(header.content())}
	rows := NewLookahead(c, func(s string) (string, bool) {
		return s, !isBlank(s)
	})
	for {
		line, ok := rows.Advance()
		if !ok {
			break
		}
		t.Rows = append(t.Rows, TableFields(line.Text))
	}
	t.Pos = p.span(header.start, p.end())
	return t
}

func (p *parser) indentedCode(c Cursor, first Line) CodeBlock {
	body := NewLookahead(NewReplay(c, first), func(s string) (string, bool) {
		if isBlank(s) {
			return "", true
		}
		if !strings.HasPrefix(s, codeIndent) {
			return "", false
		}
		return s[len(codeIndent):], true
	})

	var lines []string
	for {
		line, ok := body.Advance()
		if !ok {
			break
		}
		lines = append(lines, line.Text)
	}
	return CodeBlock{Lines: trimBlankLines(lines), Pos: p.span(first.Num, p.end())}
}

// fencedCode takes lines verbatim up to a closing fence or end of input.
func (p *parser) fencedCode(c Cursor, open Line, fence byte, n int, info string) CodeBlock {
	code := CodeBlock{Language: info}
	for {
		line, ok := c.Advance()
		if !ok {
			log.Debug("unterminated fence", "line", open.Num)
			break
		}
		if isFenceClose(line.Text, fence, n) {
			break
		}
		code.Lines = append(code.Lines, line.Text)
	}
	code.Pos = p.span(open.Num, p.end())
	return code
}

// blockquote parses the '>'-stripped lines starting at first. Unmarked
// lines continue the quote lazily unless they would start another block.
func (p *parser) blockquote(c Cursor, first Line, depth int) Blockquote {
	log.Debug("blockquote", "line", first.Num, "depth", depth)

	body := NewLookahead(NewReplay(c, first), func(s string) (string, bool) {
		if isBlank(s) {
			return "", false
		}
		if text, ok := blockquoteBody(s); ok {
			return text, true
		}
		if interruptsLazyContinuation(s) {
			return "", false
		}
		return s, true
	})
	content := slices.Collect(p.blocks(body, depth+1))
	return Blockquote{Content: content, Pos: p.span(first.Num, p.end())}
}
