package richtext

import "testing"

func blockKinds(d *Document) []Kind {
	kinds := make([]Kind, len(d.Roots))
	for i, id := range d.Roots {
		kinds[i] = d.Nodes[id].Kind
	}
	return kinds
}

func mustValid(t *testing.T, d *Document) {
	t.Helper()
	if err := d.Validate(); err != nil {
		t.Fatalf("document invalid: %v", err)
	}
}

func TestToggleMarkAddAndRemove(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "hello world"})
	run := d.Nodes[p].Children[0]
	sel := Range{Anchor: Point{Node: run, Offset: 0}, Focus: Point{Node: run, Offset: 11}}

	ToggleMark(d, sel, Bold)
	mustValid(t, d)
	if got := Serialize(d); got != "**hello world**" {
		t.Fatalf("after toggle on: %q", got)
	}
	if !IsMarkActive(d, sel, Bold) {
		t.Fatal("bold not active after toggle on")
	}

	ToggleMark(d, sel, Bold)
	mustValid(t, d)
	if got := Serialize(d); got != "hello world" {
		t.Fatalf("after toggle off: %q", got)
	}
}

func TestToggleMarkSplitsPartialRun(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "hello world"})
	run := d.Nodes[p].Children[0]

	// select "world"
	sel := Range{Anchor: Point{Node: run, Offset: 6}, Focus: Point{Node: run, Offset: 11}}
	ToggleMark(d, sel, Bold)
	mustValid(t, d)

	runs := d.Nodes[p].Children
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2 after split", len(runs))
	}
	if got := Serialize(d); got != "hello **world**" {
		t.Errorf("Serialize() = %q", got)
	}
	// the original run id now holds exactly the selected slice
	if d.Nodes[run].Text != "world" || !d.Nodes[run].Marks.Has(Bold) {
		t.Errorf("selected run = %q marks %#x", d.Nodes[run].Text, uint8(d.Nodes[run].Marks))
	}
}

func TestToggleMarkSplitsInterior(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "abcdef"})
	run := d.Nodes[p].Children[0]

	sel := Range{Anchor: Point{Node: run, Offset: 2}, Focus: Point{Node: run, Offset: 4}}
	ToggleMark(d, sel, Italic)
	mustValid(t, d)

	if len(d.Nodes[p].Children) != 3 {
		t.Fatalf("got %d runs, want 3", len(d.Nodes[p].Children))
	}
	if got := Serialize(d); got != "ab*cd*ef" {
		t.Errorf("Serialize() = %q", got)
	}
}

func TestToggleMarkRemovesFromSubRange(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "bold text", Marks: MarkSet(Bold)})
	run := d.Nodes[p].Children[0]

	// unbold "text" only
	sel := Range{Anchor: Point{Node: run, Offset: 5}, Focus: Point{Node: run, Offset: 9}}
	ToggleMark(d, sel, Bold)
	mustValid(t, d)

	if got := Serialize(d); got != "**bold **text" {
		t.Errorf("Serialize() = %q", got)
	}
}

func TestToggleMarkAcrossRuns(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(
		Run{Text: "one "},
		Run{Text: "two", Marks: MarkSet(Italic)},
		Run{Text: " three"},
	)
	runs := d.Nodes[p].Children
	sel := Range{Anchor: Point{Node: runs[0], Offset: 0}, Focus: Point{Node: runs[2], Offset: 6}}

	// mixed state: bold inactive, so toggle adds it everywhere
	ToggleMark(d, sel, Bold)
	mustValid(t, d)
	if !IsMarkActive(d, sel, Bold) {
		t.Fatal("bold not active everywhere after toggle")
	}
	// italic untouched
	if IsMarkActive(d, sel, Italic) {
		t.Fatal("italic should still be partial")
	}
}

func TestToggleMarkDoubleToggleRestoresMarks(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(
		Run{Text: "plain "},
		Run{Text: "italic", Marks: MarkSet(Italic)},
	)
	runs := d.Nodes[p].Children
	sel := Range{Anchor: Point{Node: runs[0], Offset: 2}, Focus: Point{Node: runs[1], Offset: 3}}

	before := Serialize(d)
	ToggleMark(d, sel, Bold)
	ToggleMark(d, sel, Bold)
	mustValid(t, d)

	if got := Serialize(d); got != before {
		t.Errorf("double toggle changed content: %q, want %q", got, before)
	}
}

func TestToggleMarkUnknownMarkPanics(t *testing.T) {
	d := New()
	run := d.Nodes[d.Roots[0]].Children[0]
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown mark")
		}
	}()
	ToggleMark(d, Caret(run, 0), Mark(4))
}

func TestToggleBlockHeadingOff(t *testing.T) {
	d := &Document{}
	h := d.AppendHeading(1, Run{Text: "Title"})
	run := d.Nodes[h].Children[0]
	sel := Range{Anchor: Point{Node: run, Offset: 0}, Focus: Point{Node: run, Offset: 5}}

	ToggleBlock(d, sel, BlockHeading1)
	mustValid(t, d)

	if len(d.Roots) != 1 || d.Nodes[d.Roots[0]].Kind != KindParagraph {
		t.Fatalf("blocks = %v, want single paragraph", blockKinds(d))
	}
	if got := d.BlockText(d.Roots[0]); got != "Title" {
		t.Errorf("text = %q, want %q", got, "Title")
	}
}

func TestToggleBlockHeadingOn(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "body"})
	run := d.Nodes[p].Children[0]

	ToggleBlock(d, Caret(run, 0), BlockHeading3)
	mustValid(t, d)

	n := d.Nodes[d.Roots[0]]
	if n.Kind != KindHeading || n.Level != 3 {
		t.Fatalf("got %s level %d, want heading 3", n.Kind, n.Level)
	}
}

func TestToggleBlockListWrap(t *testing.T) {
	d := &Document{}
	a := d.AppendParagraph(Run{Text: "a"})
	b := d.AppendParagraph(Run{Text: "b"})
	sel := Range{
		Anchor: Point{Node: d.Nodes[a].Children[0], Offset: 0},
		Focus:  Point{Node: d.Nodes[b].Children[0], Offset: 1},
	}

	ToggleBlock(d, sel, BlockBulleted)
	mustValid(t, d)

	if len(d.Roots) != 1 {
		t.Fatalf("blocks = %v, want a single list", blockKinds(d))
	}
	list := d.Nodes[d.Roots[0]]
	if list.Kind != KindList || list.List != Bulleted {
		t.Fatalf("got %s, want bulleted list", list.Kind)
	}
	if len(list.Children) != 2 {
		t.Fatalf("got %d items, want 2", len(list.Children))
	}
	for i, want := range []string{"a", "b"} {
		if got := d.BlockText(list.Children[i]); got != want {
			t.Errorf("item %d = %q, want %q", i, got, want)
		}
	}
}

func TestToggleBlockListOff(t *testing.T) {
	d := &Document{}
	l := d.AppendList(Bulleted, []Run{{Text: "a"}}, []Run{{Text: "b"}})
	items := d.Nodes[l].Children
	sel := Range{
		Anchor: Point{Node: d.Nodes[items[0]].Children[0], Offset: 0},
		Focus:  Point{Node: d.Nodes[items[1]].Children[0], Offset: 1},
	}

	ToggleBlock(d, sel, BlockBulleted)
	mustValid(t, d)

	kinds := blockKinds(d)
	if len(kinds) != 2 || kinds[0] != KindParagraph || kinds[1] != KindParagraph {
		t.Fatalf("blocks = %v, want two paragraphs", kinds)
	}
}

func TestToggleBlockPartialListSplits(t *testing.T) {
	d := &Document{}
	l := d.AppendList(Bulleted, []Run{{Text: "a"}}, []Run{{Text: "b"}}, []Run{{Text: "c"}})
	middle := d.Nodes[d.Nodes[l].Children[1]].Children[0]

	ToggleBlock(d, Caret(middle, 0), BlockQuote)
	mustValid(t, d)

	kinds := blockKinds(d)
	want := []Kind{KindList, KindBlockquote, KindList}
	if len(kinds) != 3 {
		t.Fatalf("blocks = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("blocks = %v, want %v", kinds, want)
		}
	}
	if got := d.BlockText(d.Roots[1]); got != "b" {
		t.Errorf("lifted block text = %q, want %q", got, "b")
	}
	// sibling lists keep the original kind and one item each
	for _, i := range []int{0, 2} {
		n := d.Nodes[d.Roots[i]]
		if n.List != Bulleted || len(n.Children) != 1 {
			t.Errorf("block %d: kind %v items %d, want bulleted with 1 item", i, n.List, len(n.Children))
		}
	}
}

func TestToggleBlockListKindConversion(t *testing.T) {
	d := &Document{}
	l := d.AppendList(Bulleted, []Run{{Text: "a"}}, []Run{{Text: "b"}})
	items := d.Nodes[l].Children
	sel := Range{
		Anchor: Point{Node: d.Nodes[items[0]].Children[0], Offset: 0},
		Focus:  Point{Node: d.Nodes[items[1]].Children[0], Offset: 1},
	}

	ToggleBlock(d, sel, BlockNumbered)
	mustValid(t, d)

	if len(d.Roots) != 1 {
		t.Fatalf("blocks = %v, want single list", blockKinds(d))
	}
	n := d.Nodes[d.Roots[0]]
	if n.Kind != KindList || n.List != Numbered {
		t.Fatalf("got %s kind %v, want numbered list", n.Kind, n.List)
	}
}

func TestToggleBlockMixedSelectionConvertsUniformly(t *testing.T) {
	d := &Document{}
	h := d.AppendHeading(1, Run{Text: "head"})
	p := d.AppendParagraph(Run{Text: "para"})
	sel := Range{
		Anchor: Point{Node: d.Nodes[h].Children[0], Offset: 0},
		Focus:  Point{Node: d.Nodes[p].Children[0], Offset: 4},
	}

	// selection spans h1 + paragraph, so h1 is not "active": both convert
	ToggleBlock(d, sel, BlockHeading1)
	mustValid(t, d)

	for i, id := range d.Roots {
		n := d.Nodes[id]
		if n.Kind != KindHeading || n.Level != 1 {
			t.Errorf("block %d = %s level %d, want heading 1", i, n.Kind, n.Level)
		}
	}
}

func TestToggleBlockSpanningParagraphAndList(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "intro"})
	l := d.AppendList(Numbered, []Run{{Text: "one"}}, []Run{{Text: "two"}})
	lastItem := d.Nodes[d.Nodes[l].Children[1]].Children[0]
	sel := Range{
		Anchor: Point{Node: d.Nodes[p].Children[0], Offset: 0},
		Focus:  Point{Node: lastItem, Offset: 3},
	}

	ToggleBlock(d, sel, BlockBulleted)
	mustValid(t, d)

	if len(d.Roots) != 1 {
		t.Fatalf("blocks = %v, want one merged list", blockKinds(d))
	}
	n := d.Nodes[d.Roots[0]]
	if n.Kind != KindList || n.List != Bulleted || len(n.Children) != 3 {
		t.Fatalf("got %s kind %v with %d items, want bulleted list of 3", n.Kind, n.List, len(n.Children))
	}
}

func TestToggleBlockDoubleToggle(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "text"})
	run := d.Nodes[p].Children[0]
	sel := Caret(run, 0)

	ToggleBlock(d, sel, BlockQuote)
	ToggleBlock(d, sel, BlockQuote)
	mustValid(t, d)

	if len(d.Roots) != 1 || d.Nodes[d.Roots[0]].Kind != KindParagraph {
		t.Fatalf("blocks = %v, want the original paragraph back", blockKinds(d))
	}
}

func TestToggleBlockSequencePreservesInvariants(t *testing.T) {
	d := &Document{}
	a := d.AppendParagraph(Run{Text: "alpha"})
	b := d.AppendParagraph(Run{Text: "beta"})
	c := d.AppendParagraph(Run{Text: "gamma"})
	sel := Range{
		Anchor: Point{Node: d.Nodes[a].Children[0], Offset: 0},
		Focus:  Point{Node: d.Nodes[c].Children[0], Offset: 5},
	}
	_ = b

	steps := []BlockType{
		BlockBulleted, BlockNumbered, BlockHeading2,
		BlockBulleted, BlockQuote, BlockParagraph,
		BlockNumbered, BlockNumbered,
	}
	for _, target := range steps {
		ToggleBlock(d, sel, target)
		mustValid(t, d)
		if len(d.Roots) == 0 {
			t.Fatalf("document emptied after toggling %s", target)
		}
		// the selection stays valid: the runs survive every retype
		sel = Range{Anchor: sel.Anchor, Focus: sel.Focus}
	}
}

func TestCommandsNeverEmptyDocument(t *testing.T) {
	d := New()
	run := d.Nodes[d.Roots[0]].Children[0]
	sel := Caret(run, 0)

	for _, target := range []BlockType{BlockBulleted, BlockBulleted, BlockHeading1, BlockParagraph} {
		ToggleBlock(d, sel, target)
		mustValid(t, d)
	}
	ToggleMark(d, sel, Underline)
	ToggleMark(d, sel, Underline)
	mustValid(t, d)
}
