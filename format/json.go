package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/mdblocks/markdown"
	"github.com/dhamidi/mdblocks/markdown/inline"
)

type JSONEncoder struct {
	w   io.Writer
	doc *markdown.Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *markdown.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(documentToData(e.doc), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

// MarshalInline encodes inline nodes as an indented JSON array.
func MarshalInline(nodes []inline.Node) ([]byte, error) {
	data := inlinesToData(nodes)
	if data == nil {
		data = []*inlineData{}
	}
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
