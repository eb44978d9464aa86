package richtext

import "fmt"

// ToggleMark flips a mark uniformly across the selection. When every
// covered run already has the mark it is removed everywhere; otherwise it
// is added everywhere. Runs whose boundary falls strictly inside the
// selection are split first, so only the selected sub-range changes.
func ToggleMark(d *Document, sel Range, m Mark) {
	mustKnownMark(m)
	active := IsMarkActive(d, sel, m)
	for _, s := range d.coveredSegments(sel) {
		run := d.isolate(s)
		if active {
			d.Nodes[run].Marks = d.Nodes[run].Marks.Without(m)
		} else {
			d.Nodes[run].Marks = d.Nodes[run].Marks.With(m)
		}
	}
}

// isolate returns a run covering exactly the segment, splitting the
// original run within its parent when the segment is a strict sub-range.
// The original node keeps the middle slice so the returned ID stays valid
// for the caller.
func (d *Document) isolate(s segment) NodeID {
	text := d.Nodes[s.run].Text
	if s.start == 0 && s.end == len(text) {
		return s.run
	}
	marks := d.Nodes[s.run].Marks
	parent := d.parentOf(s.run)

	replacement := make([]NodeID, 0, 3)
	if s.start > 0 {
		replacement = append(replacement, d.alloc(Node{Kind: KindText, Text: text[:s.start], Marks: marks}))
	}
	replacement = append(replacement, s.run)
	if s.end < len(text) {
		replacement = append(replacement, d.alloc(Node{Kind: KindText, Text: text[s.end:], Marks: marks}))
	}
	d.Nodes[s.run].Text = text[s.start:s.end]

	children := d.Nodes[parent].Children
	for i, c := range children {
		if c == s.run {
			next := make([]NodeID, 0, len(children)+2)
			next = append(next, children[:i]...)
			next = append(next, replacement...)
			next = append(next, children[i+1:]...)
			d.Nodes[parent].Children = next
			break
		}
	}
	return s.run
}

// parentOf finds the container holding a run. Every reachable run has
// exactly one parent; anything else is an internal invariant failure.
func (d *Document) parentOf(run NodeID) NodeID {
	for id := range d.Nodes {
		for _, c := range d.Nodes[id].Children {
			if c == run {
				return NodeID(id)
			}
		}
	}
	panic(fmt.Sprintf("richtext: run %d has no parent", run))
}

// ToggleBlock retags every block intersecting the selection. The toggle is
// never additive across mixed selections: when the blocks do not all match
// the target already, the whole selection converts to the target; when
// they all match, everything reverts to paragraphs.
//
// Lists are the interesting case. Selected list items are always lifted
// out of their list first (splitting the list so unselected sibling items
// stay wrapped), then retyped, and finally re-wrapped in a fresh list node
// when the target is a list kind.
func ToggleBlock(d *Document, sel Range, target BlockType) {
	segs := d.coveredSegments(sel)
	if len(segs) == 0 {
		return
	}
	active := IsBlockActive(d, sel, target)
	from, to := d.blockRange(segs)

	covered := make(map[NodeID]bool, len(segs))
	for _, s := range segs {
		covered[s.run] = true
	}

	// Unwrap: lift selected list items to the top level, keeping
	// unselected items of the same list wrapped in lists of its kind.
	newRoots := make([]NodeID, 0, len(d.Roots)+2)
	newRoots = append(newRoots, d.Roots[:from]...)
	var affected []NodeID
	for i := from; i <= to; i++ {
		id := d.Roots[i]
		if d.Nodes[id].Kind != KindList {
			newRoots = append(newRoots, id)
			affected = append(affected, id)
			continue
		}
		kind := d.Nodes[id].List
		var before, selected, after []NodeID
		for _, item := range d.Nodes[id].Children {
			switch {
			case d.itemCovered(item, covered):
				selected = append(selected, item)
			case len(selected) == 0:
				before = append(before, item)
			default:
				after = append(after, item)
			}
		}
		if len(before) > 0 {
			newRoots = append(newRoots, d.alloc(Node{Kind: KindList, List: kind, Children: before}))
		}
		for _, item := range selected {
			d.Nodes[item].Kind = KindParagraph
			newRoots = append(newRoots, item)
			affected = append(affected, item)
		}
		if len(after) > 0 {
			newRoots = append(newRoots, d.alloc(Node{Kind: KindList, List: kind, Children: after}))
		}
	}
	newRoots = append(newRoots, d.Roots[to+1:]...)

	// Retype: toggle-off reverts to paragraph, list targets become items
	// awaiting the wrap step, everything else takes the target tag.
	for _, id := range affected {
		n := &d.Nodes[id]
		n.Level = 0
		switch {
		case active, target == BlockParagraph:
			n.Kind = KindParagraph
		case target.IsList():
			n.Kind = KindListItem
		case target == BlockQuote:
			n.Kind = KindBlockquote
		default:
			n.Kind = KindHeading
			n.Level = target.headingLevel()
		}
	}

	// Wrap: collect the consecutive run of freshly retyped items into a
	// single list node of the target kind.
	if !active && target.IsList() {
		wrapped := make([]NodeID, 0, len(newRoots))
		for i := 0; i < len(newRoots); {
			if d.Nodes[newRoots[i]].Kind != KindListItem {
				wrapped = append(wrapped, newRoots[i])
				i++
				continue
			}
			j := i
			for j < len(newRoots) && d.Nodes[newRoots[j]].Kind == KindListItem {
				j++
			}
			items := make([]NodeID, j-i)
			copy(items, newRoots[i:j])
			wrapped = append(wrapped, d.alloc(Node{Kind: KindList, List: target.listKind(), Children: items}))
			i = j
		}
		newRoots = wrapped
	}

	d.Roots = newRoots
}

func (d *Document) itemCovered(item NodeID, covered map[NodeID]bool) bool {
	for _, run := range d.Nodes[item].Children {
		if covered[run] {
			return true
		}
	}
	return false
}
