// Package format renders parsed markdown documents as JSON, YAML, an
// indented tree or canonical markdown.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/mdblocks/markdown"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *markdown.Document) error
}

// Names lists the encoders known to NewEncoder.
var Names = []string{"json", "yaml", "tree", "markdown", "md"}

type options struct {
	color bool
}

type Option func(*options)

// WithColor styles tree output with terminal colors.
func WithColor(on bool) Option {
	return func(o *options) {
		o.color = on
	}
}

// NewEncoder returns the encoder registered under name writing to w.
func NewEncoder(name string, w io.Writer, opts ...Option) (Encoder, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w, o.color), nil
	case "markdown", "md":
		return NewMarkdownEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
