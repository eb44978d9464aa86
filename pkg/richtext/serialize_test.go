package richtext

import "testing"

func fullSelection(d *Document) Range {
	order := d.runOrder()
	first, last := order[0], order[len(order)-1]
	return Range{
		Anchor: Point{Node: first, Offset: 0},
		Focus:  Point{Node: last, Offset: len(d.Nodes[last].Text)},
	}
}

func TestSerializeBlocks(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Document
		want  string
	}{
		{
			name:  "empty document",
			build: New,
			want:  "",
		},
		{
			name: "plain paragraph",
			build: func() *Document {
				d := &Document{}
				d.AppendParagraph(Run{Text: "hello"})
				return d
			},
			want: "hello",
		},
		{
			name: "heading levels",
			build: func() *Document {
				d := &Document{}
				d.AppendHeading(1, Run{Text: "one"})
				d.AppendHeading(2, Run{Text: "two"})
				d.AppendHeading(3, Run{Text: "three"})
				return d
			},
			want: "# one\n\n## two\n\n### three",
		},
		{
			name: "mixed heading and quote",
			build: func() *Document {
				d := &Document{}
				d.AppendHeading(2, Run{Text: "H"})
				d.AppendBlockquote(Run{Text: "Q"})
				return d
			},
			want: "## H\n\n> Q",
		},
		{
			name: "list items joined by single newline",
			build: func() *Document {
				d := &Document{}
				d.AppendParagraph(Run{Text: "intro"})
				d.AppendList(Bulleted, []Run{{Text: "a"}}, []Run{{Text: "b"}})
				return d
			},
			want: "intro\n\n- a\n- b",
		},
		{
			name: "numbered list uses the same item prefix",
			build: func() *Document {
				d := &Document{}
				d.AppendList(Numbered, []Run{{Text: "first"}}, []Run{{Text: "second"}})
				return d
			},
			want: "- first\n- second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Serialize(tt.build())
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeMarks(t *testing.T) {
	tests := []struct {
		name  string
		marks MarkSet
		want  string
	}{
		{"no marks", 0, "text"},
		{"bold", MarkSet(Bold), "**text**"},
		{"italic", MarkSet(Italic), "*text*"},
		{"underline", MarkSet(Underline), "<u>text</u>"},
		{"bold italic", MarkSet(Bold) | MarkSet(Italic), "***text***"},
		{"underline outermost", knownMarks, "<u>***text***</u>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Document{}
			d.AppendParagraph(Run{Text: "text", Marks: tt.marks})
			if got := Serialize(d); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeAdjacentRuns(t *testing.T) {
	d := &Document{}
	d.AppendParagraph(Run{Text: "plain "}, Run{Text: "bold", Marks: MarkSet(Bold)}, Run{Text: " tail"})
	want := "plain **bold** tail"
	if got := Serialize(d); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	d := &Document{}
	d.AppendHeading(1, Run{Text: "title", Marks: MarkSet(Bold) | MarkSet(Underline)})
	d.AppendList(Numbered, []Run{{Text: "x"}}, []Run{{Text: "y", Marks: MarkSet(Italic)}})

	first := Serialize(d)
	for i := 0; i < 10; i++ {
		if got := Serialize(d); got != first {
			t.Fatalf("Serialize() not deterministic: %q vs %q", got, first)
		}
	}
}
