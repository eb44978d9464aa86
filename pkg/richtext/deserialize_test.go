package richtext

import "testing"

func TestDeserializeLineClassification(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  Kind
		wantLevel int
		wantText  string
	}{
		{"h1", "# Title", KindHeading, 1, "Title"},
		{"h2", "## Sub", KindHeading, 2, "Sub"},
		{"h3", "### Deep", KindHeading, 3, "Deep"},
		{"quote", "> wise words", KindBlockquote, 0, "wise words"},
		{"dash line is a paragraph, not a list", "- item", KindParagraph, 0, "item"},
		{"plain line", "just text", KindParagraph, 0, "just text"},
		{"hash without space", "#tag", KindParagraph, 0, "#tag"},
		{"four hashes", "#### too deep", KindParagraph, 0, "#### too deep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Deserialize(tt.input)
			if len(d.Roots) != 1 {
				t.Fatalf("got %d blocks, want 1", len(d.Roots))
			}
			n := d.Nodes[d.Roots[0]]
			if n.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", n.Kind, tt.wantKind)
			}
			if n.Kind == KindHeading && n.Level != tt.wantLevel {
				t.Errorf("level = %d, want %d", n.Level, tt.wantLevel)
			}
			if got := d.BlockText(d.Roots[0]); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestDeserializeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", " \n\t\n "} {
		d := Deserialize(input)
		if err := d.Validate(); err != nil {
			t.Fatalf("Deserialize(%q) invalid: %v", input, err)
		}
		if len(d.Roots) != 1 {
			t.Fatalf("Deserialize(%q) = %d blocks, want minimal document", input, len(d.Roots))
		}
		n := d.Nodes[d.Roots[0]]
		if n.Kind != KindParagraph || d.BlockText(d.Roots[0]) != "" {
			t.Errorf("Deserialize(%q) is not the minimal empty document", input)
		}
	}
}

func TestDeserializeDropsBlankLines(t *testing.T) {
	d := Deserialize("# A\n\n\nB\n\n> C")
	if len(d.Roots) != 3 {
		t.Fatalf("got %d blocks, want 3", len(d.Roots))
	}
	kinds := []Kind{KindHeading, KindParagraph, KindBlockquote}
	for i, want := range kinds {
		if got := d.Nodes[d.Roots[i]].Kind; got != want {
			t.Errorf("block %d kind = %s, want %s", i, got, want)
		}
	}
}

// Marks do not survive the flat-text round trip; their delimiters come
// back as literal characters. That asymmetry is intentional and this test
// pins it down.
func TestRoundTripIsLossyForMarks(t *testing.T) {
	d := &Document{}
	d.AppendParagraph(Run{Text: "hi", Marks: MarkSet(Bold)})

	flat := Serialize(d)
	if flat != "**hi**" {
		t.Fatalf("Serialize() = %q, want %q", flat, "**hi**")
	}

	back := Deserialize(flat)
	if len(back.Roots) != 1 {
		t.Fatalf("got %d blocks, want 1", len(back.Roots))
	}
	runs := back.Nodes[back.Roots[0]].Children
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	run := back.Nodes[runs[0]]
	if run.Text != "**hi**" {
		t.Errorf("text = %q, want literal %q", run.Text, "**hi**")
	}
	if run.Marks != 0 {
		t.Errorf("marks = %#x, want none", uint8(run.Marks))
	}
}

// Lists flatten to independent paragraphs on the way back.
func TestRoundTripIsLossyForLists(t *testing.T) {
	d := &Document{}
	d.AppendList(Bulleted, []Run{{Text: "a"}}, []Run{{Text: "b"}})

	back := Deserialize(Serialize(d))
	if len(back.Roots) != 2 {
		t.Fatalf("got %d blocks, want 2 paragraphs", len(back.Roots))
	}
	for i, want := range []string{"a", "b"} {
		n := back.Nodes[back.Roots[i]]
		if n.Kind != KindParagraph {
			t.Errorf("block %d kind = %s, want paragraph", i, n.Kind)
		}
		if got := back.BlockText(back.Roots[i]); got != want {
			t.Errorf("block %d text = %q, want %q", i, got, want)
		}
	}
}
