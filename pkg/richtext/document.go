// Package richtext implements the structured rich-text document model used
// for chapter content: a tree of blocks (paragraphs, headings, blockquotes,
// lists) whose leaves are text runs carrying inline marks. The package also
// provides the editing commands (mark and block toggling), read-only
// selection queries for toolbar state, a markdown-like flat-text projection,
// and a JSON codec for persistence.
//
// The engine is pure and synchronous: no I/O, no goroutines, no hidden
// state. The host owns the Document's lifetime and the selection.
package richtext

import "fmt"

// NodeID is a stable index into a Document's node arena. IDs are assigned
// in document order when a Document is built or decoded, and never change
// while the Document lives; structural edits allocate new nodes instead of
// moving existing ones.
type NodeID int

// Kind tags the variant of a Node.
type Kind uint8

const (
	KindText Kind = iota
	KindParagraph
	KindHeading
	KindBlockquote
	KindList
	KindListItem
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindBlockquote:
		return "quote"
	case KindList:
		return "list"
	case KindListItem:
		return "listitem"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Mark is an orthogonal inline attribute of a text run. The values match
// the Lexical editor's format bitmask so persisted documents stay readable
// by Lexical-based clients.
type Mark uint8

const (
	Bold      Mark = 1
	Italic    Mark = 2
	Underline Mark = 8
)

func (m Mark) String() string {
	switch m {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	}
	return fmt.Sprintf("mark(%d)", uint8(m))
}

// ParseMark maps a wire token to a Mark. Unknown tokens are rejected here,
// at the boundary, so the command engine never sees them.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "bold":
		return Bold, nil
	case "italic":
		return Italic, nil
	case "underline":
		return Underline, nil
	}
	return 0, fmt.Errorf("unknown mark %q", s)
}

// MarkSet is the set of marks active on a run, stored as a bitmask.
type MarkSet uint8

const knownMarks = MarkSet(Bold) | MarkSet(Italic) | MarkSet(Underline)

func (s MarkSet) Has(m Mark) bool        { return s&MarkSet(m) != 0 }
func (s MarkSet) With(m Mark) MarkSet    { return s | MarkSet(m) }
func (s MarkSet) Without(m Mark) MarkSet { return s &^ MarkSet(m) }

// ListKind distinguishes bulleted from numbered lists.
type ListKind uint8

const (
	Bulleted ListKind = iota
	Numbered
)

// Node is one vertex of the document tree. Exactly one of the shape rules
// holds: text nodes carry Text and Marks and have no children; list nodes
// have only listitem children; every other kind has only text children.
type Node struct {
	Kind     Kind
	Level    int      // headings: 1..3
	List     ListKind // lists
	Children []NodeID
	Text     string  // text runs
	Marks    MarkSet // text runs
}

// Run is a construction-time value for a text leaf.
type Run struct {
	Text  string
	Marks MarkSet
}

// Document is an arena of nodes plus the ordered list of top-level blocks.
// A well-formed Document always has at least one block; the minimal
// document is a single paragraph holding one empty run.
type Document struct {
	Nodes []Node
	Roots []NodeID
}

// New returns the minimal valid Document: one paragraph with one empty run.
func New() *Document {
	d := &Document{}
	d.AppendParagraph(Run{})
	return d
}

// Node returns a pointer into the arena. The pointer is invalidated by any
// call that allocates nodes, so callers must not hold it across edits.
func (d *Document) Node(id NodeID) *Node {
	return &d.Nodes[id]
}

func (d *Document) alloc(n Node) NodeID {
	d.Nodes = append(d.Nodes, n)
	return NodeID(len(d.Nodes) - 1)
}

func (d *Document) allocRuns(runs []Run) []NodeID {
	if len(runs) == 0 {
		runs = []Run{{}}
	}
	children := make([]NodeID, len(runs))
	for i, r := range runs {
		children[i] = d.alloc(Node{Kind: KindText, Text: r.Text, Marks: r.Marks & knownMarks})
	}
	return children
}

// AppendParagraph adds a paragraph block at the end of the document.
// A block with no runs gets a single empty run.
func (d *Document) AppendParagraph(runs ...Run) NodeID {
	id := d.alloc(Node{Kind: KindParagraph, Children: d.allocRuns(runs)})
	d.Roots = append(d.Roots, id)
	return id
}

// AppendHeading adds a heading block. Level must be 1..3.
func (d *Document) AppendHeading(level int, runs ...Run) NodeID {
	if level < 1 || level > 3 {
		panic(fmt.Sprintf("richtext: heading level %d out of range", level))
	}
	id := d.alloc(Node{Kind: KindHeading, Level: level, Children: d.allocRuns(runs)})
	d.Roots = append(d.Roots, id)
	return id
}

// AppendBlockquote adds a blockquote block.
func (d *Document) AppendBlockquote(runs ...Run) NodeID {
	id := d.alloc(Node{Kind: KindBlockquote, Children: d.allocRuns(runs)})
	d.Roots = append(d.Roots, id)
	return id
}

// AppendList adds a list block; each items element becomes one list item.
// A list with no items gets a single item holding one empty run.
func (d *Document) AppendList(kind ListKind, items ...[]Run) NodeID {
	if len(items) == 0 {
		items = [][]Run{nil}
	}
	children := make([]NodeID, len(items))
	for i, runs := range items {
		children[i] = d.alloc(Node{Kind: KindListItem, Children: d.allocRuns(runs)})
	}
	id := d.alloc(Node{Kind: KindList, List: kind, Children: children})
	d.Roots = append(d.Roots, id)
	return id
}

// BlockText returns the concatenated run text of a block. For lists it
// joins the items with a newline.
func (d *Document) BlockText(id NodeID) string {
	n := d.Nodes[id]
	if n.Kind == KindList {
		out := ""
		for i, item := range n.Children {
			if i > 0 {
				out += "\n"
			}
			out += d.BlockText(item)
		}
		return out
	}
	out := ""
	for _, c := range n.Children {
		out += d.Nodes[c].Text
	}
	return out
}

// Validate checks the structural invariants: at least one block, list
// children are exclusively list items, all other containers hold only text
// runs, heading levels in range. Command engine bugs surface here; a
// violation is a programming error, never user input.
func (d *Document) Validate() error {
	if len(d.Roots) == 0 {
		return fmt.Errorf("richtext: document has no blocks")
	}
	for _, id := range d.Roots {
		if err := d.validateBlock(id); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateBlock(id NodeID) error {
	if id < 0 || int(id) >= len(d.Nodes) {
		return fmt.Errorf("richtext: block id %d out of range", id)
	}
	n := d.Nodes[id]
	switch n.Kind {
	case KindList:
		if len(n.Children) == 0 {
			return fmt.Errorf("richtext: list %d has no items", id)
		}
		for _, c := range n.Children {
			if d.Nodes[c].Kind != KindListItem {
				return fmt.Errorf("richtext: list %d has non-listitem child %s", id, d.Nodes[c].Kind)
			}
			if err := d.validateRuns(c); err != nil {
				return err
			}
		}
	case KindParagraph, KindBlockquote:
		return d.validateRuns(id)
	case KindHeading:
		if n.Level < 1 || n.Level > 3 {
			return fmt.Errorf("richtext: heading %d has level %d", id, n.Level)
		}
		return d.validateRuns(id)
	default:
		return fmt.Errorf("richtext: %s node %d at block position", n.Kind, id)
	}
	return nil
}

func (d *Document) validateRuns(id NodeID) error {
	n := d.Nodes[id]
	if len(n.Children) == 0 {
		return fmt.Errorf("richtext: %s %d has no runs", n.Kind, id)
	}
	for _, c := range n.Children {
		cn := d.Nodes[c]
		if cn.Kind != KindText {
			return fmt.Errorf("richtext: %s %d has non-text child %s", n.Kind, id, cn.Kind)
		}
		if cn.Marks&^knownMarks != 0 {
			return fmt.Errorf("richtext: run %d carries unknown marks %#x", c, uint8(cn.Marks))
		}
	}
	return nil
}

// Append copies every block of src onto the end of d, marks included.
// Node IDs of the copied blocks are freshly assigned in d's arena.
func (d *Document) Append(src *Document) {
	for _, rootID := range src.Roots {
		root := src.Nodes[rootID]
		switch root.Kind {
		case KindList:
			items := make([][]Run, len(root.Children))
			for i, itemID := range root.Children {
				items[i] = src.blockRuns(itemID)
			}
			d.AppendList(root.List, items...)
		case KindHeading:
			d.AppendHeading(root.Level, src.blockRuns(rootID)...)
		case KindBlockquote:
			d.AppendBlockquote(src.blockRuns(rootID)...)
		default:
			d.AppendParagraph(src.blockRuns(rootID)...)
		}
	}
}

func (d *Document) blockRuns(id NodeID) []Run {
	n := d.Nodes[id]
	runs := make([]Run, len(n.Children))
	for i, c := range n.Children {
		runs[i] = Run{Text: d.Nodes[c].Text, Marks: d.Nodes[c].Marks}
	}
	return runs
}
