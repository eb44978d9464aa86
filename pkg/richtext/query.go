package richtext

import "fmt"

// BlockType names a toggle target for block commands: the tag a toolbar
// button represents, including the heading level or list kind.
type BlockType uint8

const (
	BlockParagraph BlockType = iota
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockQuote
	BlockBulleted
	BlockNumbered
)

func (t BlockType) String() string {
	switch t {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading1:
		return "h1"
	case BlockHeading2:
		return "h2"
	case BlockHeading3:
		return "h3"
	case BlockQuote:
		return "quote"
	case BlockBulleted:
		return "bullet"
	case BlockNumbered:
		return "number"
	}
	return fmt.Sprintf("blocktype(%d)", uint8(t))
}

// ParseBlockType maps a wire token to a BlockType, rejecting unknown
// tokens at the boundary.
func ParseBlockType(s string) (BlockType, error) {
	switch s {
	case "paragraph":
		return BlockParagraph, nil
	case "h1":
		return BlockHeading1, nil
	case "h2":
		return BlockHeading2, nil
	case "h3":
		return BlockHeading3, nil
	case "quote":
		return BlockQuote, nil
	case "bullet":
		return BlockBulleted, nil
	case "number":
		return BlockNumbered, nil
	}
	return 0, fmt.Errorf("unknown block type %q", s)
}

// IsList reports whether the target is a list kind.
func (t BlockType) IsList() bool {
	return t == BlockBulleted || t == BlockNumbered
}

func (t BlockType) headingLevel() int {
	switch t {
	case BlockHeading1:
		return 1
	case BlockHeading2:
		return 2
	case BlockHeading3:
		return 3
	}
	return 0
}

func (t BlockType) listKind() ListKind {
	if t == BlockNumbered {
		return Numbered
	}
	return Bulleted
}

func mustKnownMark(m Mark) {
	if m != Bold && m != Italic && m != Underline {
		panic(fmt.Sprintf("richtext: unknown mark %#x", uint8(m)))
	}
}

// IsMarkActive reports whether every text run intersecting the selection
// carries the mark. A collapsed caret is evaluated against the run under
// the cursor. A selection covering zero runs is never active.
func IsMarkActive(d *Document, sel Range, m Mark) bool {
	mustKnownMark(m)
	segs := d.coveredSegments(sel)
	if len(segs) == 0 {
		return false
	}
	for _, s := range segs {
		if !d.Nodes[s.run].Marks.Has(m) {
			return false
		}
	}
	return true
}

// IsBlockActive reports whether every block intersecting the selection has
// the target tag (including heading level and list kind). Drives toolbar
// highlight state; no side effects.
func IsBlockActive(d *Document, sel Range, target BlockType) bool {
	segs := d.coveredSegments(sel)
	if len(segs) == 0 {
		return false
	}
	from, to := d.blockRange(segs)
	for i := from; i <= to; i++ {
		if !d.blockMatches(d.Roots[i], target) {
			return false
		}
	}
	return true
}

func (d *Document) blockMatches(id NodeID, target BlockType) bool {
	n := d.Nodes[id]
	switch target {
	case BlockParagraph:
		return n.Kind == KindParagraph
	case BlockHeading1, BlockHeading2, BlockHeading3:
		return n.Kind == KindHeading && n.Level == target.headingLevel()
	case BlockQuote:
		return n.Kind == KindBlockquote
	case BlockBulleted:
		return n.Kind == KindList && n.List == Bulleted
	case BlockNumbered:
		return n.Kind == KindList && n.List == Numbered
	}
	return false
}
