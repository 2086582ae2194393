// Package document defines the block-document model and its JSON parser.
//
// A document is a title, a modified date, and an ordered sequence of typed
// content blocks. The block variant set is closed: consumers type-switch
// over the three variants and guard the default case with a panic, so a new
// variant cannot be added without updating every consumption site.
package document

import "time"

// Metadata holds the document header fields. Values are immutable once
// parsed; Metadata is created only by ParseMetadata.
type Metadata struct {
	Title    string
	Modified time.Time
}

// Block is one unit of document content. It is a sealed sum type: the only
// implementations are Header, Paragraph, and Checkbox in this package.
type Block interface {
	block()
}

// Header is a top-level heading block (JSON type tag "h1").
type Header struct {
	Text string
}

// Paragraph is a plain text block (JSON type tag "p").
type Paragraph struct {
	Text string
}

// Checkbox is a checkable line item (JSON type tag "checkbox").
type Checkbox struct {
	Text    string
	Checked bool
}

func (Header) block()    {}
func (Paragraph) block() {}
func (Checkbox) block()  {}

// Document is a fully parsed document. Blocks preserves input order.
type Document struct {
	Metadata Metadata
	Blocks   []Block
}
