package richtext

import "testing"

func TestIsMarkActive(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(
		Run{Text: "bold ", Marks: MarkSet(Bold)},
		Run{Text: "both", Marks: MarkSet(Bold) | MarkSet(Italic)},
		Run{Text: " plain"},
	)
	runs := d.Nodes[p].Children

	tests := []struct {
		name string
		sel  Range
		mark Mark
		want bool
	}{
		{
			name: "all covered runs bold",
			sel:  Range{Anchor: Point{Node: runs[0]}, Focus: Point{Node: runs[1], Offset: 4}},
			mark: Bold,
			want: true,
		},
		{
			name: "italic only on second run",
			sel:  Range{Anchor: Point{Node: runs[0]}, Focus: Point{Node: runs[1], Offset: 4}},
			mark: Italic,
			want: false,
		},
		{
			name: "plain tail breaks bold",
			sel:  Range{Anchor: Point{Node: runs[0]}, Focus: Point{Node: runs[2], Offset: 3}},
			mark: Bold,
			want: false,
		},
		{
			name: "caret evaluates the run under the cursor",
			sel:  Caret(runs[1], 2),
			mark: Italic,
			want: true,
		},
		{
			name: "caret on plain run",
			sel:  Caret(runs[2], 0),
			mark: Bold,
			want: false,
		},
		{
			name: "backwards selection normalizes",
			sel:  Range{Anchor: Point{Node: runs[1], Offset: 4}, Focus: Point{Node: runs[0]}},
			mark: Bold,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarkActive(d, tt.sel, tt.mark); got != tt.want {
				t.Errorf("IsMarkActive(%s) = %v, want %v", tt.mark, got, tt.want)
			}
		})
	}
}

func TestIsBlockActive(t *testing.T) {
	d := &Document{}
	h := d.AppendHeading(2, Run{Text: "title"})
	p := d.AppendParagraph(Run{Text: "body"})
	l := d.AppendList(Bulleted, []Run{{Text: "item"}})

	hRun := d.Nodes[h].Children[0]
	pRun := d.Nodes[p].Children[0]
	itemRun := d.Nodes[d.Nodes[l].Children[0]].Children[0]

	tests := []struct {
		name   string
		sel    Range
		target BlockType
		want   bool
	}{
		{"heading matches its level", Caret(hRun, 0), BlockHeading2, true},
		{"heading level must match", Caret(hRun, 0), BlockHeading1, false},
		{"paragraph", Caret(pRun, 2), BlockParagraph, true},
		{"list kind matches", Caret(itemRun, 0), BlockBulleted, true},
		{"list kind must match", Caret(itemRun, 0), BlockNumbered, false},
		{
			name:   "mixed selection is never active",
			sel:    Range{Anchor: Point{Node: hRun}, Focus: Point{Node: pRun, Offset: 4}},
			target: BlockHeading2,
			want:   false,
		},
		{
			name:   "selection across paragraph and list",
			sel:    Range{Anchor: Point{Node: pRun}, Focus: Point{Node: itemRun, Offset: 4}},
			target: BlockBulleted,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlockActive(d, tt.sel, tt.target); got != tt.want {
				t.Errorf("IsBlockActive(%s) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestInvalidSelectionPanics(t *testing.T) {
	d := New()
	run := d.Nodes[d.Roots[0]].Children[0]

	tests := []struct {
		name string
		sel  Range
	}{
		{"node out of range", Caret(NodeID(99), 0)},
		{"negative node", Caret(NodeID(-1), 0)},
		{"offset past end", Caret(run, 10)},
		{"block node instead of run", Caret(d.Roots[0], 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %s", tt.name)
				}
			}()
			IsMarkActive(d, tt.sel, Bold)
		})
	}
}

func TestParseMark(t *testing.T) {
	for _, tok := range []string{"bold", "italic", "underline"} {
		m, err := ParseMark(tok)
		if err != nil {
			t.Fatalf("ParseMark(%q): %v", tok, err)
		}
		if m.String() != tok {
			t.Errorf("ParseMark(%q).String() = %q", tok, m.String())
		}
	}
	if _, err := ParseMark("strikethrough"); err == nil {
		t.Error("ParseMark accepted unknown mark")
	}
}

func TestParseBlockType(t *testing.T) {
	for _, tok := range []string{"paragraph", "h1", "h2", "h3", "quote", "bullet", "number"} {
		bt, err := ParseBlockType(tok)
		if err != nil {
			t.Fatalf("ParseBlockType(%q): %v", tok, err)
		}
		if bt.String() != tok {
			t.Errorf("ParseBlockType(%q).String() = %q", tok, bt.String())
		}
	}
	if _, err := ParseBlockType("h4"); err == nil {
		t.Error("ParseBlockType accepted h4")
	}
}
