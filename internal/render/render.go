// Package render converts parsed documents to plain text for tooling
// output and search indexing. It is the non-graphical consumer of the
// block model; a display layer would map blocks the same way.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/calder/quire/internal/document"
	"github.com/calder/quire/internal/reldate"
)

// Blocks renders a block sequence as plain text, one line per block,
// preserving order.
func Blocks(blocks []document.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch v := b.(type) {
		case document.Header:
			sb.WriteString("# " + v.Text + "\n")
		case document.Paragraph:
			sb.WriteString(v.Text + "\n")
		case document.Checkbox:
			mark := "[ ]"
			if v.Checked {
				mark = "[x]"
			}
			sb.WriteString(mark + " " + v.Text + "\n")
		default:
			panic(fmt.Sprintf("render: unhandled block variant %T", b))
		}
	}
	return sb.String()
}

// Text renders a full document: title, the modified label relative to now,
// a blank line, then the block body.
func Text(doc *document.Document, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(doc.Metadata.Title + "\n")
	sb.WriteString(reldate.Format(doc.Metadata.Modified, now) + "\n\n")
	sb.WriteString(Blocks(doc.Blocks))
	return sb.String()
}
