package richtext

import "testing"

func TestNewIsMinimalValidDocument(t *testing.T) {
	d := New()
	mustValid(t, d)

	if len(d.Roots) != 1 {
		t.Fatalf("want 1 block, got %d", len(d.Roots))
	}
	if d.Nodes[d.Roots[0]].Kind != KindParagraph {
		t.Fatalf("want paragraph, got %s", d.Nodes[d.Roots[0]].Kind)
	}
	if got := Serialize(d); got != "" {
		t.Fatalf("want empty text, got %q", got)
	}
}

func TestValidateRejectsMalformedDocuments(t *testing.T) {
	t.Run("no blocks", func(t *testing.T) {
		d := &Document{}
		if err := d.Validate(); err == nil {
			t.Fatal("expected error for empty document")
		}
	})

	t.Run("heading level out of range", func(t *testing.T) {
		d := &Document{}
		id := d.AppendHeading(2, Run{Text: "x"})
		d.Nodes[id].Level = 4
		if err := d.Validate(); err == nil {
			t.Fatal("expected error for heading level 4")
		}
	})

	t.Run("block without runs", func(t *testing.T) {
		d := &Document{}
		id := d.AppendParagraph(Run{Text: "x"})
		d.Nodes[id].Children = nil
		if err := d.Validate(); err == nil {
			t.Fatal("expected error for paragraph without runs")
		}
	})

	t.Run("unknown mark bits on a run", func(t *testing.T) {
		d := &Document{}
		id := d.AppendParagraph(Run{Text: "x"})
		run := d.Nodes[id].Children[0]
		d.Nodes[run].Marks = MarkSet(4)
		if err := d.Validate(); err == nil {
			t.Fatal("expected error for unknown mark bits")
		}
	})

	t.Run("list holding a non-item", func(t *testing.T) {
		d := &Document{}
		id := d.AppendList(Bulleted, []Run{{Text: "a"}})
		p := d.alloc(Node{Kind: KindParagraph})
		d.Nodes[id].Children = append(d.Nodes[id].Children, p)
		if err := d.Validate(); err == nil {
			t.Fatal("expected error for paragraph inside list")
		}
	})
}

func TestAppendCopiesBlocksAndMarks(t *testing.T) {
	dst := &Document{}
	dst.AppendHeading(1, Run{Text: "Existing"})

	src := &Document{}
	src.AppendParagraph(Run{Text: "plain "}, Run{Text: "bold", Marks: MarkSet(Bold)})
	src.AppendBlockquote(Run{Text: "quoted", Marks: MarkSet(Italic)})
	src.AppendList(Numbered, []Run{{Text: "one"}}, []Run{{Text: "two"}})

	dst.Append(src)
	mustValid(t, dst)

	want := "# Existing\n\nplain **bold**\n\n> *quoted*\n\n- one\n- two"
	if got := Serialize(dst); got != want {
		t.Fatalf("serialized:\n%q\nwant:\n%q", got, want)
	}

	// Copied list keeps its kind even though Serialize flattens it
	last := dst.Nodes[dst.Roots[3]]
	if last.Kind != KindList || last.List != Numbered {
		t.Fatalf("want numbered list, got %s", last.Kind)
	}

	// Mutating the copy must not touch the source
	run := dst.Nodes[dst.Roots[1]].Children[0]
	dst.Nodes[run].Text = "changed "
	if got := Serialize(src); got != "plain **bold**\n\n> *quoted*\n\n- one\n- two" {
		t.Fatalf("source changed: %q", got)
	}
}

func TestBlockText(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "hello "}, Run{Text: "world", Marks: MarkSet(Bold)})
	if got := d.BlockText(p); got != "hello world" {
		t.Fatalf("BlockText: %q", got)
	}

	l := d.AppendList(Bulleted, []Run{{Text: "a"}}, []Run{{Text: "b"}})
	if got := d.BlockText(l); got != "a\nb" {
		t.Fatalf("list BlockText: %q", got)
	}
}

func TestWordCount(t *testing.T) {
	d := &Document{}
	p := d.AppendParagraph(Run{Text: "three  little "}, Run{Text: "words", Marks: MarkSet(Bold)})
	if got := WordCount(d, p); got != 3 {
		t.Fatalf("WordCount: %d", got)
	}

	empty := d.AppendParagraph(Run{Text: ""})
	if got := WordCount(d, empty); got != 0 {
		t.Fatalf("empty WordCount: %d", got)
	}
}
