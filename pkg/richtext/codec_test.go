package richtext

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := &Document{}
	d.AppendHeading(2, Run{Text: "Chapter One"})
	d.AppendParagraph(
		Run{Text: "It was "},
		Run{Text: "dark", Marks: MarkSet(Bold) | MarkSet(Italic)},
		Run{Text: " outside."},
	)
	d.AppendBlockquote(Run{Text: "said nobody", Marks: MarkSet(Underline)})
	d.AppendList(Numbered, []Run{{Text: "first"}}, []Run{{Text: "second"}})

	data, err := EncodeJSON(d)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	got, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	mustValid(t, got)

	if Serialize(got) != Serialize(d) {
		t.Errorf("text projection changed:\n%q\n%q", Serialize(got), Serialize(d))
	}
	if len(got.Roots) != len(d.Roots) {
		t.Fatalf("got %d blocks, want %d", len(got.Roots), len(d.Roots))
	}

	// marks survive, unlike the flat-text round trip
	p := got.Nodes[got.Roots[1]]
	dark := got.Nodes[p.Children[1]]
	if dark.Text != "dark" || !dark.Marks.Has(Bold) || !dark.Marks.Has(Italic) {
		t.Errorf("run = %q marks %#x", dark.Text, uint8(dark.Marks))
	}
	list := got.Nodes[got.Roots[3]]
	if list.Kind != KindList || list.List != Numbered {
		t.Errorf("got %s kind %v, want numbered list", list.Kind, list.List)
	}
}

func TestEncodeDecodeDeterministicLayout(t *testing.T) {
	d := &Document{}
	d.AppendParagraph(Run{Text: "a"}, Run{Text: "b", Marks: MarkSet(Bold)})
	d.AppendHeading(1, Run{Text: "h"})

	data, err := EncodeJSON(d)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	first, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	second, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	if len(first.Nodes) != len(second.Nodes) {
		t.Fatalf("arena sizes differ: %d vs %d", len(first.Nodes), len(second.Nodes))
	}
	for i := range first.Nodes {
		a, b := first.Nodes[i], second.Nodes[i]
		if a.Kind != b.Kind || a.Text != b.Text || a.Marks != b.Marks {
			t.Fatalf("node %d differs between decodes", i)
		}
	}

	again, err := EncodeJSON(first)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("encode is not stable:\n%s\n%s", data, again)
	}
}

func TestDecodeEmptyRoot(t *testing.T) {
	d, err := DecodeJSON([]byte(`{"root":{"type":"root"}}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	mustValid(t, d)
	if len(d.Roots) != 1 || d.Nodes[d.Roots[0]].Kind != KindParagraph {
		t.Errorf("blocks = %v, want the minimal document", blockKinds(d))
	}
}

func TestDecodeMasksUnknownFormatBits(t *testing.T) {
	payload := `{"root":{"type":"root","children":[
		{"type":"paragraph","children":[{"type":"text","text":"x","format":255}]}
	]}}`
	d, err := DecodeJSON([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	run := d.Nodes[d.Nodes[d.Roots[0]].Children[0]]
	want := MarkSet(Bold) | MarkSet(Italic) | MarkSet(Underline)
	if run.Marks != want {
		t.Errorf("marks = %#x, want %#x", uint8(run.Marks), uint8(want))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "not json",
			payload: `{`,
			wantErr: "decode document",
		},
		{
			name:    "missing root",
			payload: `{"root":{"type":"paragraph"}}`,
			wantErr: "missing root",
		},
		{
			name:    "unknown block type",
			payload: `{"root":{"type":"root","children":[{"type":"table"}]}}`,
			wantErr: `unsupported block type "table"`,
		},
		{
			name:    "bad heading tag",
			payload: `{"root":{"type":"root","children":[{"type":"heading","tag":"h6","children":[{"type":"text","text":"x"}]}]}}`,
			wantErr: `bad heading tag "h6"`,
		},
		{
			name:    "unknown list type",
			payload: `{"root":{"type":"root","children":[{"type":"list","listType":"check","children":[{"type":"listitem","children":[{"type":"text","text":"x"}]}]}]}}`,
			wantErr: `unknown list type "check"`,
		},
		{
			name:    "list holding non item",
			payload: `{"root":{"type":"root","children":[{"type":"list","listType":"bullet","children":[{"type":"paragraph"}]}]}}`,
			wantErr: `want listitem`,
		},
		{
			name:    "nested block inline",
			payload: `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"paragraph"}]}]}}`,
			wantErr: `unsupported inline type "paragraph"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.payload))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
