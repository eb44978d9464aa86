package richtext

import (
	"encoding/json"
	"fmt"
)

// The JSON shape mirrors the Lexical editor state the web client edits:
// {"root":{"type":"root","children":[...]}} with a format bitmask on text
// nodes, a tag (h1..h3) on headings and a listType on lists. Unlike the
// flat-text projection, this codec round-trips the structured tree
// exactly, which is why it is the persistence format for chapter content.

type jsonRoot struct {
	Root jsonNode `json:"root"`
}

type jsonNode struct {
	Type     string     `json:"type"`
	Tag      string     `json:"tag,omitempty"`      // heading: h1, h2, h3
	ListType string     `json:"listType,omitempty"` // list: bullet, number
	Format   int        `json:"format,omitempty"`   // text: mark bitmask
	Text     string     `json:"text,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

// EncodeJSON renders the document as Lexical-style JSON.
func EncodeJSON(d *Document) ([]byte, error) {
	root := jsonNode{Type: "root"}
	for _, id := range d.Roots {
		root.Children = append(root.Children, encodeNode(d, id))
	}
	return json.Marshal(jsonRoot{Root: root})
}

func encodeNode(d *Document, id NodeID) jsonNode {
	n := d.Nodes[id]
	out := jsonNode{}
	switch n.Kind {
	case KindText:
		out.Type = "text"
		out.Text = n.Text
		out.Format = int(n.Marks)
		return out
	case KindParagraph:
		out.Type = "paragraph"
	case KindHeading:
		out.Type = "heading"
		out.Tag = fmt.Sprintf("h%d", n.Level)
	case KindBlockquote:
		out.Type = "quote"
	case KindList:
		out.Type = "list"
		if n.List == Numbered {
			out.ListType = "number"
		} else {
			out.ListType = "bullet"
		}
	case KindListItem:
		out.Type = "listitem"
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, encodeNode(d, c))
	}
	return out
}

// DecodeJSON parses Lexical-style JSON back into a Document. Node IDs are
// assigned in document order, so a given payload always decodes to the
// same arena layout and selections built against it stay meaningful.
//
// Structure is validated (a list may only hold listitems, heading tags
// must be h1..h3, node types must be known); format bits outside the
// supported marks are masked off for compatibility with richer clients.
// An empty root decodes to the minimal document.
func DecodeJSON(data []byte) (*Document, error) {
	var root jsonRoot
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if root.Root.Type != "root" {
		return nil, fmt.Errorf("decode document: missing root node")
	}
	d := &Document{}
	for _, child := range root.Root.Children {
		if err := decodeBlock(d, child); err != nil {
			return nil, err
		}
	}
	if len(d.Roots) == 0 {
		return New(), nil
	}
	return d, nil
}

func decodeBlock(d *Document, n jsonNode) error {
	switch n.Type {
	case "paragraph":
		runs, err := decodeRuns(n.Children)
		if err != nil {
			return err
		}
		d.AppendParagraph(runs...)
	case "heading":
		level := 0
		if _, err := fmt.Sscanf(n.Tag, "h%d", &level); err != nil || level < 1 || level > 3 {
			return fmt.Errorf("decode document: bad heading tag %q", n.Tag)
		}
		runs, err := decodeRuns(n.Children)
		if err != nil {
			return err
		}
		d.AppendHeading(level, runs...)
	case "quote":
		runs, err := decodeRuns(n.Children)
		if err != nil {
			return err
		}
		d.AppendBlockquote(runs...)
	case "list":
		var kind ListKind
		switch n.ListType {
		case "bullet", "":
			kind = Bulleted
		case "number":
			kind = Numbered
		default:
			return fmt.Errorf("decode document: unknown list type %q", n.ListType)
		}
		items := make([][]Run, 0, len(n.Children))
		for _, item := range n.Children {
			if item.Type != "listitem" {
				return fmt.Errorf("decode document: list holds %q, want listitem", item.Type)
			}
			runs, err := decodeRuns(item.Children)
			if err != nil {
				return err
			}
			items = append(items, runs)
		}
		d.AppendList(kind, items...)
	default:
		return fmt.Errorf("decode document: unsupported block type %q", n.Type)
	}
	return nil
}

func decodeRuns(children []jsonNode) ([]Run, error) {
	runs := make([]Run, 0, len(children))
	for _, c := range children {
		if c.Type != "text" {
			return nil, fmt.Errorf("decode document: unsupported inline type %q", c.Type)
		}
		runs = append(runs, Run{Text: c.Text, Marks: MarkSet(c.Format) & knownMarks})
	}
	return runs, nil
}
