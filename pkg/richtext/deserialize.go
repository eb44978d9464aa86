package richtext

import "strings"

// Deserialize reconstructs a Document from flat text, line by line. It is
// deliberately NOT the inverse of Serialize: inline mark delimiters
// (**, *, <u>) are kept as literal characters, and "- " lines become
// independent paragraphs rather than list items. The flat-text path only
// feeds AI generation, where structure beyond block prefixes carries no
// meaning; structured persistence goes through the JSON codec instead.
//
// Any input maps to some valid Document: blank lines are dropped, empty or
// whitespace-only input yields the minimal document, and unrecognized
// lines become paragraphs. There is no failure mode.
func Deserialize(text string) *Document {
	if strings.TrimSpace(text) == "" {
		return New()
	}
	d := &Document{}
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			// dropped, never an empty paragraph
		case strings.HasPrefix(line, "### "):
			d.AppendHeading(3, Run{Text: line[4:]})
		case strings.HasPrefix(line, "## "):
			d.AppendHeading(2, Run{Text: line[3:]})
		case strings.HasPrefix(line, "# "):
			d.AppendHeading(1, Run{Text: line[2:]})
		case strings.HasPrefix(line, "> "):
			d.AppendBlockquote(Run{Text: line[2:]})
		case strings.HasPrefix(line, "- "):
			d.AppendParagraph(Run{Text: line[2:]})
		default:
			d.AppendParagraph(Run{Text: line})
		}
	}
	if len(d.Roots) == 0 {
		return New()
	}
	return d
}
