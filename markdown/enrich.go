package markdown

import "github.com/dhamidi/mdblocks/markdown/inline"

// enrich runs the inline parser over the leaves of b. Container blocks are
// rebuilt with enriched children.
func enrich(b Block) Block {
	switch b := b.(type) {
	case Heading:
		b.Inline = inline.Parse(b.Content)
		return b
	case Paragraph:
		nodes := inline.Parse(b.Content)
		if len(nodes) == 1 {
			if img, ok := nodes[0].(inline.Image); ok {
				return Image{Alt: img.Alt, Href: img.Href, Pos: b.Pos}
			}
		}
		b.Inline = nodes
		return b
	case Table:
		b.HeaderInline = enrichRow(b.Header)
		if b.Rows != nil {
			b.RowsInline = make([][][]inline.Node, len(b.Rows))
			for i, row := range b.Rows {
				b.RowsInline[i] = enrichRow(row)
			}
		}
		return b
	case List:
		items := make([]Item, len(b.Items))
		for i, item := range b.Items {
			items[i] = Item(enrichAll(item))
		}
		b.Items = items
		return b
	case Blockquote:
		b.Content = enrichAll(b.Content)
		return b
	default:
		return b
	}
}

func enrichAll(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = enrich(b)
	}
	return out
}

func enrichRow(cells []string) [][]inline.Node {
	out := make([][]inline.Node, len(cells))
	for i, cell := range cells {
		out[i] = inline.Parse(cell)
	}
	return out
}
