// Package inline splits the raw text of a leaf block into code spans,
// emphasis, links, images and plain text.
package inline

// Node is implemented by all inline nodes.
type Node interface {
	node()
}

type Style int

const (
	Plain Style = iota
	Bold
	Italic
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	default:
		return ""
	}
}

// Text is a run of literal or emphasized text.
type Text struct {
	Content string
	Style   Style
}

func (Text) node() {}

// Code is a `code span`.
type Code struct {
	Content string
}

func (Code) node() {}

// Image is ![alt](href).
type Image struct {
	Alt  string
	Href string
}

func (Image) node() {}

// Link is [text](href). External links point at http or https URLs.
type Link struct {
	Text     string
	Href     string
	External bool
}

func (Link) node() {}
