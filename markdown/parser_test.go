package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func parseLines(lines ...string) []Block {
	return ParseBlocks(strings.Join(lines, "\n"))
}

func expectBlocks(t *testing.T, got, want []Block) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("blocks mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func TestParagraphJoinsTrimmedLines(t *testing.T) {
	got := parseLines("  first line ", "second", "   third")
	expectBlocks(t, got, []Block{
		Paragraph{Content: "first line second third"},
	})
}

func TestBlankLinesSeparateParagraphs(t *testing.T) {
	got := parseLines("", "a", "", "", "b", "")
	expectBlocks(t, got, []Block{
		Paragraph{Content: "a"},
		Paragraph{Content: "b"},
	})
}

func TestEmptyInput(t *testing.T) {
	if got := ParseBlocks(""); len(got) != 0 {
		t.Fatalf("expected no blocks, got %#v", got)
	}
}

func TestATXHeadings(t *testing.T) {
	tests := []struct {
		line    string
		level   int
		content string
	}{
		{"# Heading 1", 1, "Heading 1"},
		{"## Heading 2", 2, "Heading 2"},
		{"###### Heading 6", 6, "Heading 6"},
		{"#                  foo                     ", 1, "foo"},
		{"   # foo", 1, "foo"},
		{"## foo ##", 2, "foo"},
		{"  ###   bar    ###", 3, "bar"},
		{"# foo ############", 1, "foo"},
		{"##### bar  ##", 5, "bar"},
		{"## foo ##      ", 2, "foo"},
		{"### foo ### b", 3, "foo ### b"},
		{"# foo#", 1, "foo#"},
		{`### foo \###`, 3, `foo \###`},
		{`## foo #\##`, 2, `foo #\##`},
		{`# foo \#`, 1, `foo \#`},
		{"## ", 2, ""},
		{"#", 1, ""},
		{"### ###", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ParseBlocks(tt.line)
			expectBlocks(t, got, []Block{Heading{Level: tt.level, Content: tt.content}})
		})
	}
}

func TestNotATXHeading(t *testing.T) {
	for _, line := range []string{"####### Paragraph", "#5 bolt", "#hashtag", `\## foo`} {
		t.Run(line, func(t *testing.T) {
			expectBlocks(t, ParseBlocks(line), []Block{Paragraph{Content: line}})
		})
	}
}

func TestHeadingIndentBoundary(t *testing.T) {
	got := ParseBlocks("    # foo")
	expectBlocks(t, got, []Block{CodeBlock{Lines: []string{"# foo"}}})
}

func TestHeadingInterruptsParagraph(t *testing.T) {
	got := parseLines("# Heading 1", "content line 1", "content line 2", "## Next")
	expectBlocks(t, got, []Block{
		Heading{Level: 1, Content: "Heading 1"},
		Paragraph{Content: "content line 1 content line 2"},
		Heading{Level: 2, Content: "Next"},
	})
}

func TestSetextHeadings(t *testing.T) {
	got := parseLines("Heading 1", "=========", "Heading", "two", "  ----------  ")
	expectBlocks(t, got, []Block{
		Heading{Level: 1, Content: "Heading 1"},
		Heading{Level: 2, Content: "Heading two"},
	})
}

func TestSetextRequiresParagraph(t *testing.T) {
	expectBlocks(t, ParseBlocks("==="), []Block{Paragraph{Content: "==="}})

	expectBlocks(t, parseLines("Foo", "---", "bar"), []Block{
		Heading{Level: 2, Content: "Foo"},
		Paragraph{Content: "bar"},
	})

	expectBlocks(t, parseLines("---", "Foo", "---"), []Block{
		HorizontalRule{},
		Heading{Level: 2, Content: "Foo"},
	})
}

func TestThematicBreaks(t *testing.T) {
	for _, line := range []string{
		"---",
		"***",
		"___",
		" ---",
		"  ---",
		"   ---",
		"----------------",
		" - - -",
		" **  * ** * ** * **",
		"-     -      -      -",
		"- - - -    ",
	} {
		t.Run(line, func(t *testing.T) {
			expectBlocks(t, ParseBlocks(line), []Block{HorizontalRule{}})
		})
	}
}

func TestNotThematicBreak(t *testing.T) {
	for _, line := range []string{
		"text",
		"+++",
		"===",
		"--",
		"    ---",
		" *-*",
		"_ _ _ _ a",
		"a------",
		"---a---",
	} {
		t.Run(line, func(t *testing.T) {
			got := ParseBlocks(line)
			if len(got) != 1 {
				t.Fatalf("expected 1 block, got %d: %#v", len(got), got)
			}
			if _, ok := got[0].(HorizontalRule); ok {
				t.Errorf("expected %q not to be a thematic break", line)
			}
		})
	}
}

func TestThematicBreakBetweenParagraphs(t *testing.T) {
	expectBlocks(t, parseLines("Foo", "***", "bar"), []Block{
		Paragraph{Content: "Foo"},
		HorizontalRule{},
		Paragraph{Content: "bar"},
	})
}

func item(blocks ...Block) Item {
	return Item(blocks)
}

func TestSimpleLists(t *testing.T) {
	expectBlocks(t, parseLines("- Item 1", "- Item 2", "- Item 3"), []Block{
		List{Items: []Item{
			item(Paragraph{Content: "Item 1"}),
			item(Paragraph{Content: "Item 2"}),
			item(Paragraph{Content: "Item 3"}),
		}},
	})

	expectBlocks(t, parseLines("1. Item 1", "7) Item 2"), []Block{
		List{Ordered: true, Items: []Item{
			item(Paragraph{Content: "Item 1"}),
			item(Paragraph{Content: "Item 2"}),
		}},
	})
}

func TestNestedLists(t *testing.T) {
	got := parseLines(
		"- Item 0",
		"- Item 1",
		"  - Sub 1",
		"  - Sub 2",
		"    1. SS1",
		"    1. SS2",
		"- Item 2",
	)
	expectBlocks(t, got, []Block{
		List{Items: []Item{
			item(Paragraph{Content: "Item 0"}),
			item(
				Paragraph{Content: "Item 1"},
				List{Items: []Item{
					item(Paragraph{Content: "Sub 1"}),
					item(
						Paragraph{Content: "Sub 2"},
						List{Ordered: true, Items: []Item{
							item(Paragraph{Content: "SS1"}),
							item(Paragraph{Content: "SS2"}),
						}},
					),
				}},
			),
			item(Paragraph{Content: "Item 2"}),
		}},
	})
}

func TestListItemLazyContinuation(t *testing.T) {
	got := parseLines("- one", "  two", "- three")
	expectBlocks(t, got, []Block{
		List{Items: []Item{
			item(Paragraph{Content: "one two"}),
			item(Paragraph{Content: "three"}),
		}},
	})
}

func TestListEndsAtUnindentedLine(t *testing.T) {
	got := parseLines("- one", "after")
	expectBlocks(t, got, []Block{
		List{Items: []Item{item(Paragraph{Content: "one"})}},
		Paragraph{Content: "after"},
	})
}

func TestListInterruptedByThematicBreak(t *testing.T) {
	expectBlocks(t, parseLines("- foo", "---", "- bar"), []Block{
		List{Items: []Item{item(Paragraph{Content: "foo"})}},
		HorizontalRule{},
		List{Items: []Item{item(Paragraph{Content: "bar"})}},
	})

	expectBlocks(t, parseLines("* Foo", "* * *", "* Bar"), []Block{
		List{Items: []Item{item(Paragraph{Content: "Foo"})}},
		HorizontalRule{},
		List{Items: []Item{item(Paragraph{Content: "Bar"})}},
	})
}

func TestListItemWithWideSpacing(t *testing.T) {
	// Five spaces after the marker: one belongs to the marker, four make
	// an indented code block inside the item.
	got := parseLines("-     code")
	expectBlocks(t, got, []Block{
		List{Items: []Item{item(CodeBlock{Lines: []string{"code"}})}},
	})
}

func TestListItemWidthCountsMarkerSpaces(t *testing.T) {
	// Two spaces after the marker make a width of three, so a line
	// indented by two leaves the item.
	expectBlocks(t, parseLines("-  foo", "  bar"), []Block{
		List{Items: []Item{item(Paragraph{Content: "foo"})}},
		Paragraph{Content: "bar"},
	})
	expectBlocks(t, parseLines("-  foo", "   bar"), []Block{
		List{Items: []Item{item(Paragraph{Content: "foo bar"})}},
	})
}

func TestListItemWithParagraphs(t *testing.T) {
	got := parseLines("1.  first", "", "    second", "2.  third")
	expectBlocks(t, got, []Block{
		List{Ordered: true, Items: []Item{
			item(Paragraph{Content: "first"}, Paragraph{Content: "second"}),
			item(Paragraph{Content: "third"}),
		}},
	})
}

func TestTables(t *testing.T) {
	want := []Block{Table{
		Header: []string{"Field A", "Field B", "Field C"},
		Rows:   [][]string{{"A1", "B1", "C1"}, {"A2", "B2", "C2"}},
	}}

	t.Run("no outside pipes", func(t *testing.T) {
		expectBlocks(t, parseLines(
			"Field A | Field B | Field C",
			"--------|---------|--------",
			"A1      | B1      | C1     ",
			"A2      | B2      | C2     ",
		), want)
	})

	t.Run("outside pipes", func(t *testing.T) {
		expectBlocks(t, parseLines(
			"| Field A | Field B | Field C|",
			"|---------|---------|--------|",
			"| A1      | B1      | C1     |",
			"| A2      | B2      | C2     |",
		), want)
	})
}

func TestTableEndsAtBlankLine(t *testing.T) {
	got := parseLines("Field A | Field B", "--------|--------", "A1      | B1", "", "after")
	expectBlocks(t, got, []Block{
		Table{Header: []string{"Field A", "Field B"}, Rows: [][]string{{"A1", "B1"}}},
		Paragraph{Content: "after"},
	})
}

func TestTableWithoutRows(t *testing.T) {
	got := parseLines("a | b", "--|--")
	expectBlocks(t, got, []Block{Table{Header: []string{"a", "b"}}})
}

func TestTableRaggedRows(t *testing.T) {
	got := parseLines("a | b", "---|---", "1", "1 | 2 | 3")
	expectBlocks(t, got, []Block{Table{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1"}, {"1", "2", "3"}},
	}})
}

func TestTableFields(t *testing.T) {
	tests := []struct {
		row  string
		want []string
	}{
		{"a | b", []string{"a", "b"}},
		{"| a | b |", []string{"a", "b"}},
		{"||a||", []string{"", "a", ""}},
		{"a", []string{"a"}},
		{"|", []string{""}},
	}
	for _, tt := range tests {
		if got := TableFields(tt.row); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("TableFields(%q) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestIndentedCode(t *testing.T) {
	got := parseLines("    a", "", "      b", "    ", "", "c")
	expectBlocks(t, got, []Block{
		CodeBlock{Lines: []string{"a", "", "  b"}},
		Paragraph{Content: "c"},
	})
}

func TestIndentedCodeDoesNotInterruptParagraph(t *testing.T) {
	got := parseLines("text", "    more")
	expectBlocks(t, got, []Block{Paragraph{Content: "text more"}})
}

func TestFencedCode(t *testing.T) {
	got := parseLines("```", "<", " >", "```")
	expectBlocks(t, got, []Block{CodeBlock{Lines: []string{"<", " >"}}})
}

func TestFencedCodeLanguage(t *testing.T) {
	got := parseLines("~~~~ go ", "x := 1", "~~~", "~~~~~", "after")
	expectBlocks(t, got, []Block{
		CodeBlock{Language: "go", Lines: []string{"x := 1", "~~~"}},
		Paragraph{Content: "after"},
	})
}

func TestFencedCodeKeepsBlankLines(t *testing.T) {
	got := parseLines("```", "", "a", "", "```")
	expectBlocks(t, got, []Block{CodeBlock{Lines: []string{"", "a", ""}}})
}

func TestFencedCodeMismatchedCloser(t *testing.T) {
	got := parseLines("```", "~~~", "```")
	expectBlocks(t, got, []Block{CodeBlock{Lines: []string{"~~~"}}})
}

func TestUnterminatedFence(t *testing.T) {
	got := parseLines("text", "```", "# not a heading", "", "- nor a list")
	expectBlocks(t, got, []Block{
		Paragraph{Content: "text"},
		CodeBlock{Lines: []string{"# not a heading", "", "- nor a list"}},
	})
}

func TestEmptyFence(t *testing.T) {
	got := parseLines("```", "```")
	expectBlocks(t, got, []Block{CodeBlock{}})
}

func TestBlockquoteLazyContinuation(t *testing.T) {
	expectBlocks(t, parseLines("> foo", "bar"), []Block{
		Blockquote{Content: []Block{Paragraph{Content: "foo bar"}}},
	})

	expectBlocks(t, parseLines("> foo", "---"), []Block{
		Blockquote{Content: []Block{Paragraph{Content: "foo"}}},
		HorizontalRule{},
	})
}

func TestBlockquoteLazyContinuationInterrupted(t *testing.T) {
	quote := Blockquote{Content: []Block{Paragraph{Content: "a"}}}

	tests := []struct {
		name  string
		lines []string
		want  []Block
	}{
		{
			name:  "atx heading",
			lines: []string{"> a", "# h"},
			want:  []Block{quote, Heading{Level: 1, Content: "h"}},
		},
		{
			name:  "list item",
			lines: []string{"> a", "- b"},
			want:  []Block{quote, List{Items: []Item{item(Paragraph{Content: "b"})}}},
		},
		{
			name:  "indented code",
			lines: []string{"> a", "    b"},
			want:  []Block{quote, CodeBlock{Lines: []string{"b"}}},
		},
		{
			name:  "blank line",
			lines: []string{"> a", "", "b"},
			want:  []Block{quote, Paragraph{Content: "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectBlocks(t, parseLines(tt.lines...), tt.want)
		})
	}
}

func TestBlockquoteEndsAtBlankLine(t *testing.T) {
	got := parseLines("> a", ">", "> b", "", "> c")
	expectBlocks(t, got, []Block{
		Blockquote{Content: []Block{Paragraph{Content: "a"}, Paragraph{Content: "b"}}},
		Blockquote{Content: []Block{Paragraph{Content: "c"}}},
	})
}

func TestBlockquoteContainers(t *testing.T) {
	got := parseLines("> # Title", "> - one", ">   - two", "> > deep")
	expectBlocks(t, got, []Block{
		Blockquote{Content: []Block{
			Heading{Level: 1, Content: "Title"},
			List{Items: []Item{
				item(
					Paragraph{Content: "one"},
					List{Items: []Item{item(Paragraph{Content: "two"})}},
				),
			}},
			Blockquote{Content: []Block{Paragraph{Content: "deep"}}},
		}},
	})
}

func TestBlockquoteInterruptsParagraph(t *testing.T) {
	got := parseLines("text", "> quote")
	expectBlocks(t, got, []Block{
		Paragraph{Content: "text"},
		Blockquote{Content: []Block{Paragraph{Content: "quote"}}},
	})
}

func TestMaxDepth(t *testing.T) {
	got := ParseBlocks("> > > deep", WithMaxDepth(2))
	expectBlocks(t, got, []Block{
		Blockquote{Content: []Block{
			Blockquote{Content: []Block{Paragraph{Content: "> deep"}}},
		}},
	})
}

func TestDeepNestingDoesNotFail(t *testing.T) {
	src := strings.Repeat(">", 5000) + " x"
	got := ParseBlocks(src)
	if len(got) != 1 {
		t.Fatalf("expected 1 block, got %d", len(got))
	}
}

func TestPositions(t *testing.T) {
	src := strings.Join([]string{
		"# Title", // 1
		"",        // 2
		"para",    // 3
		"graph",   // 4
		"",        // 5
		"- a",     // 6
		"  b",     // 7
		"",        // 8
		"- c",     // 9
		"",        // 10
		"```",     // 11
		"code",    // 12
		"```",     // 13
		"> q",     // 14
		"lazy",    // 15
	}, "\n")

	got := ParseBlocks(src, WithPositions())
	want := []Span{{1, 1}, {3, 4}, {6, 9}, {11, 13}, {14, 15}}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %#v", len(want), len(got), got)
	}
	for i, b := range got {
		if b.Position() != want[i] {
			t.Errorf("block %d (%T): expected %+v, got %+v", i, b, want[i], b.Position())
		}
	}

	list := got[2].(List)
	if p := list.Items[0][0].Position(); p != (Span{6, 7}) {
		t.Errorf("expected first item paragraph at 6-7, got %+v", p)
	}
}

func TestPositionsOffByDefault(t *testing.T) {
	for _, b := range ParseBlocks("# a\n\ntext") {
		if !b.Position().IsZero() {
			t.Errorf("expected zero span, got %+v for %T", b.Position(), b)
		}
	}
}

func TestBlocksStopsEarly(t *testing.T) {
	src := NewLineSource("a\n\nb\n\nc")
	var got []Block
	for b := range Blocks(src) {
		got = append(got, b)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got))
	}
	// "c" was never reached.
	if line, ok := src.Peek(); !ok || line.Text != "c" {
		t.Errorf("expected remaining line %q, got %+v (ok=%v)", "c", line, ok)
	}
}
