package render

import (
	"testing"
	"time"

	"github.com/calder/quire/internal/document"
)

func TestBlocks(t *testing.T) {
	got := Blocks([]document.Block{
		document.Header{Text: "Chapter 1"},
		document.Paragraph{Text: "Some prose."},
		document.Checkbox{Text: "Done thing", Checked: true},
		document.Checkbox{Text: "Open thing", Checked: false},
	})
	want := "# Chapter 1\nSome prose.\n[x] Done thing\n[ ] Open thing\n"
	if got != want {
		t.Errorf("Blocks = %q, want %q", got, want)
	}
}

func TestBlocks_Empty(t *testing.T) {
	if got := Blocks(nil); got != "" {
		t.Errorf("Blocks(nil) = %q, want empty", got)
	}
}

func TestText(t *testing.T) {
	now := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	doc := &document.Document{
		Metadata: document.Metadata{Title: "My Document", Modified: now},
		Blocks:   []document.Block{document.Paragraph{Text: "hi"}},
	}
	got := Text(doc, now)
	want := "My Document\ntoday\n\nhi\n"
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}
