package richtext

import "fmt"

// Point addresses a position inside a text run: the run's NodeID plus a
// byte offset into its text. Offsets count bytes of the UTF-8 encoding;
// hosts must place them on rune boundaries of the same encoding they read.
type Point struct {
	Node   NodeID `json:"node"`
	Offset int    `json:"offset"`
}

// Range is a selection supplied by the host: an anchor/focus pair of
// Points. Anchor may come after focus (backwards selection); the engine
// normalizes order internally. Anchor == Focus is a collapsed caret.
type Range struct {
	Anchor Point `json:"anchor"`
	Focus  Point `json:"focus"`
}

// Caret builds a collapsed Range at the given run and offset.
func Caret(node NodeID, offset int) Range {
	p := Point{Node: node, Offset: offset}
	return Range{Anchor: p, Focus: p}
}

// IsCollapsed reports whether the Range selects zero width.
func (r Range) IsCollapsed() bool { return r.Anchor == r.Focus }

// segment is the covered byte slice [start, end) of one run.
type segment struct {
	run        NodeID
	start, end int
}

// runOrder lists every text run reachable from the roots, in document
// order. List blocks contribute their items' runs item by item.
func (d *Document) runOrder() []NodeID {
	var order []NodeID
	for _, id := range d.Roots {
		n := d.Nodes[id]
		if n.Kind == KindList {
			for _, item := range n.Children {
				order = append(order, d.Nodes[item].Children...)
			}
			continue
		}
		order = append(order, n.Children...)
	}
	return order
}

// checkPoint panics when a Point violates the host contract: the node must
// be a text run reachable from the roots, with an offset inside its text.
// A bad selection is a host-binding bug, not a recoverable condition.
func (d *Document) checkPoint(p Point, pos map[NodeID]int) {
	if p.Node < 0 || int(p.Node) >= len(d.Nodes) {
		panic(fmt.Sprintf("richtext: selection node %d out of range", p.Node))
	}
	n := d.Nodes[p.Node]
	if n.Kind != KindText {
		panic(fmt.Sprintf("richtext: selection node %d is %s, not a text run", p.Node, n.Kind))
	}
	if _, ok := pos[p.Node]; !ok {
		panic(fmt.Sprintf("richtext: selection node %d is not reachable from the document roots", p.Node))
	}
	if p.Offset < 0 || p.Offset > len(n.Text) {
		panic(fmt.Sprintf("richtext: selection offset %d out of range for run %d (len %d)", p.Offset, p.Node, len(n.Text)))
	}
}

// coveredSegments resolves a Range to the run slices it covers, in
// document order. A collapsed caret resolves to the whole run under the
// cursor. Zero-width edge touches (anchor at the very end of a non-empty
// run, focus at the very start of one) are dropped.
func (d *Document) coveredSegments(r Range) []segment {
	order := d.runOrder()
	pos := make(map[NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	d.checkPoint(r.Anchor, pos)
	d.checkPoint(r.Focus, pos)

	a, f := r.Anchor, r.Focus
	if pos[a.Node] > pos[f.Node] || (a.Node == f.Node && a.Offset > f.Offset) {
		a, f = f, a
	}

	if a.Node == f.Node {
		text := d.Nodes[a.Node].Text
		if a.Offset == f.Offset {
			return []segment{{run: a.Node, start: 0, end: len(text)}}
		}
		return []segment{{run: a.Node, start: a.Offset, end: f.Offset}}
	}

	var segs []segment
	if text := d.Nodes[a.Node].Text; a.Offset < len(text) || len(text) == 0 {
		segs = append(segs, segment{run: a.Node, start: a.Offset, end: len(text)})
	}
	for i := pos[a.Node] + 1; i < pos[f.Node]; i++ {
		id := order[i]
		segs = append(segs, segment{run: id, start: 0, end: len(d.Nodes[id].Text)})
	}
	if text := d.Nodes[f.Node].Text; f.Offset > 0 || len(text) == 0 {
		segs = append(segs, segment{run: f.Node, start: 0, end: f.Offset})
	}
	return segs
}

// blockRange returns the inclusive index range into d.Roots of the blocks
// owning the given segments. Segments are contiguous in document order, so
// the touched blocks always form one consecutive span.
func (d *Document) blockRange(segs []segment) (int, int) {
	owner := make(map[NodeID]int)
	for i, id := range d.Roots {
		n := d.Nodes[id]
		if n.Kind == KindList {
			for _, item := range n.Children {
				for _, run := range d.Nodes[item].Children {
					owner[run] = i
				}
			}
			continue
		}
		for _, run := range n.Children {
			owner[run] = i
		}
	}
	from, to := len(d.Roots), -1
	for _, s := range segs {
		i := owner[s.run]
		if i < from {
			from = i
		}
		if i > to {
			to = i
		}
	}
	return from, to
}
