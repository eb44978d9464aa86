package richtext

import "strings"

// Serialize projects the document onto flat markdown-like text: blocks
// joined by a blank line, headings prefixed with #/##/###, blockquotes
// with "> ", list items with "- " joined by single newlines. Inline marks
// wrap each run in a fixed nesting order, underline outermost, then bold,
// then italic, so output is deterministic whatever the mark combination:
// a run with all three renders as <u>***text***</u>.
//
// Deserialize is NOT the inverse of this function; see its doc.
func Serialize(d *Document) string {
	var sb strings.Builder
	for i, id := range d.Roots {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writeBlock(d, &sb, id)
	}
	return sb.String()
}

func writeBlock(d *Document, sb *strings.Builder, id NodeID) {
	n := d.Nodes[id]
	switch n.Kind {
	case KindHeading:
		sb.WriteString(strings.Repeat("#", n.Level))
		sb.WriteString(" ")
		writeRuns(d, sb, n.Children)
	case KindBlockquote:
		sb.WriteString("> ")
		writeRuns(d, sb, n.Children)
	case KindList:
		for i, item := range n.Children {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("- ")
			writeRuns(d, sb, d.Nodes[item].Children)
		}
	default:
		writeRuns(d, sb, n.Children)
	}
}

func writeRuns(d *Document, sb *strings.Builder, runs []NodeID) {
	for _, id := range runs {
		writeRun(sb, d.Nodes[id])
	}
}

func writeRun(sb *strings.Builder, n Node) {
	if n.Marks.Has(Underline) {
		sb.WriteString("<u>")
	}
	if n.Marks.Has(Bold) {
		sb.WriteString("**")
	}
	if n.Marks.Has(Italic) {
		sb.WriteString("*")
	}
	sb.WriteString(n.Text)
	if n.Marks.Has(Italic) {
		sb.WriteString("*")
	}
	if n.Marks.Has(Bold) {
		sb.WriteString("**")
	}
	if n.Marks.Has(Underline) {
		sb.WriteString("</u>")
	}
}

// WordCount counts whitespace-separated words in one block, including
// every item of a list block.
func WordCount(d *Document, id NodeID) int {
	return len(strings.Fields(d.BlockText(id)))
}
