package markdown

import "strings"

// Line is a single source line. Num is the 1-based line number in the
// original input; decorators that rewrite Text keep Num unchanged.
type Line struct {
	Num  int
	Text string
}

// Cursor gives sequential, peekable access to lines. Both methods report
// false once the input is exhausted.
type Cursor interface {
	Peek() (Line, bool)
	Advance() (Line, bool)
}

// LineSource is a Cursor over a fixed list of lines.
type LineSource struct {
	lines []string
	pos   int
}

// NewLineSource splits source on '\n'. Carriage returns, tabs and NUL
// characters are passed through untouched.
func NewLineSource(source string) *LineSource {
	return NewLineSourceLines(strings.Split(source, "\n"))
}

func NewLineSourceLines(lines []string) *LineSource {
	return &LineSource{lines: lines}
}

func (s *LineSource) Peek() (Line, bool) {
	if s.pos >= len(s.lines) {
		return Line{}, false
	}
	return Line{Num: s.pos + 1, Text: s.lines[s.pos]}, true
}

func (s *LineSource) Advance() (Line, bool) {
	line, ok := s.Peek()
	if ok {
		s.pos++
	}
	return line, ok
}

// Lookahead filters and rewrites the lines of another cursor. When accept
// rejects a line, Lookahead reports end of input and leaves the line
// unconsumed in the wrapped cursor.
type Lookahead struct {
	src    Cursor
	accept func(string) (string, bool)
}

func NewLookahead(src Cursor, accept func(string) (string, bool)) *Lookahead {
	return &Lookahead{src: src, accept: accept}
}

func (l *Lookahead) Peek() (Line, bool) {
	line, ok := l.src.Peek()
	if !ok {
		return Line{}, false
	}
	text, ok := l.accept(line.Text)
	if !ok {
		return Line{}, false
	}
	return Line{Num: line.Num, Text: text}, true
}

func (l *Lookahead) Advance() (Line, bool) {
	line, ok := l.Peek()
	if !ok {
		return Line{}, false
	}
	l.src.Advance()
	return line, true
}

// Replay delivers a queue of lines before resuming from the wrapped cursor.
// It puts back a line that was consumed to recognize a construct.
type Replay struct {
	src   Cursor
	queue []Line
}

func NewReplay(src Cursor, lines ...Line) *Replay {
	return &Replay{src: src, queue: lines}
}

func (r *Replay) Peek() (Line, bool) {
	if len(r.queue) > 0 {
		return r.queue[0], true
	}
	return r.src.Peek()
}

func (r *Replay) Advance() (Line, bool) {
	if len(r.queue) > 0 {
		line := r.queue[0]
		r.queue = r.queue[1:]
		return line, true
	}
	return r.src.Advance()
}

// tracker records the last non-blank line taken from the root cursor so
// that container blocks can report where they end.
type tracker struct {
	src  Cursor
	last int
}

func (t *tracker) Peek() (Line, bool) {
	return t.src.Peek()
}

func (t *tracker) Advance() (Line, bool) {
	line, ok := t.src.Advance()
	if ok && !isBlank(line.Text) && line.Num > t.last {
		t.last = line.Num
	}
	return line, ok
}
