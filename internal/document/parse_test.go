package document

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

const sampleJSON = `{
  "metadata": {
    "title": "My Document",
    "modified": "2023-05-10"
  },
  "blocks": [
    {"type": "h1", "text": "Chapter 1"},
    {"type": "p", "text": "pa pa pa pa paragraph"},
    {"type": "checkbox", "checked": false, "text": "Learn Dart 3"}
  ]
}`

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestParseMetadata_Valid(t *testing.T) {
	meta, err := ParseMetadata(decode(t, sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "My Document" {
		t.Errorf("title = %q, want %q", meta.Title, "My Document")
	}
	want := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	if !meta.Modified.Equal(want) {
		t.Errorf("modified = %v, want %v", meta.Modified, want)
	}
}

func TestParseMetadata_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing metadata", `{"blocks": []}`},
		{"metadata not object", `{"metadata": "nope"}`},
		{"missing title", `{"metadata": {"modified": "2023-05-10"}}`},
		{"title not string", `{"metadata": {"title": 7, "modified": "2023-05-10"}}`},
		{"missing modified", `{"metadata": {"title": "t"}}`},
		{"modified not string", `{"metadata": {"title": "t", "modified": 20230510}}`},
		{"modified unparseable", `{"metadata": {"title": "t", "modified": "May 10th"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMetadata(decode(t, tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if _, ok := AsFormatError(err); !ok {
				t.Errorf("error is %T, want *FormatError", err)
			}
		})
	}
}

func TestParseMetadata_RootNotObject(t *testing.T) {
	_, err := ParseMetadata("just a string")
	if _, ok := AsFormatError(err); !ok {
		t.Fatalf("err = %v, want FormatError", err)
	}
}

func TestParseBlock_Header(t *testing.T) {
	b, err := ParseBlock(decode(t, `{"type": "h1", "text": "Chapter 1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, ok := b.(Header)
	if !ok {
		t.Fatalf("block is %T, want Header", b)
	}
	if h.Text != "Chapter 1" {
		t.Errorf("text = %q, want %q", h.Text, "Chapter 1")
	}
}

func TestParseBlock_Checkbox(t *testing.T) {
	b, err := ParseBlock(decode(t, `{"type": "checkbox", "text": "Learn", "checked": true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cb, ok := b.(Checkbox)
	if !ok {
		t.Fatalf("block is %T, want Checkbox", b)
	}
	if cb.Text != "Learn" || !cb.Checked {
		t.Errorf("block = %+v", cb)
	}
}

func TestParseBlock_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"unknown type", `{"type": "unknown", "text": "x"}`},
		{"missing type", `{"text": "x"}`},
		{"h1 missing text", `{"type": "h1"}`},
		{"p text not string", `{"type": "p", "text": 3}`},
		{"checkbox missing checked", `{"type": "checkbox", "text": "x"}`},
		{"checkbox checked not bool", `{"type": "checkbox", "text": "x", "checked": "yes"}`},
		{"not an object", `[1, 2]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBlock(decode(t, tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if _, ok := AsFormatError(err); !ok {
				t.Errorf("error is %T, want *FormatError", err)
			}
		})
	}
}

func TestParseBlock_ExtraKeysIgnored(t *testing.T) {
	b, err := ParseBlock(decode(t, `{"type": "p", "text": "hi", "color": "red"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.(Paragraph).Text != "hi" {
		t.Errorf("block = %+v", b)
	}
}

func TestParseBlocks_OrderPreserved(t *testing.T) {
	blocks, err := ParseBlocks(decode(t, sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("len(blocks) = %d, want 3", len(blocks))
	}
	if _, ok := blocks[0].(Header); !ok {
		t.Errorf("blocks[0] is %T, want Header", blocks[0])
	}
	if _, ok := blocks[1].(Paragraph); !ok {
		t.Errorf("blocks[1] is %T, want Paragraph", blocks[1])
	}
	if _, ok := blocks[2].(Checkbox); !ok {
		t.Errorf("blocks[2] is %T, want Checkbox", blocks[2])
	}
}

func TestParseBlocks_Empty(t *testing.T) {
	blocks, err := ParseBlocks(decode(t, `{"blocks": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("len(blocks) = %d, want 0", len(blocks))
	}
}

func TestParseBlocks_FirstFailureWins(t *testing.T) {
	input := `{"blocks": [{"type": "h1", "text": "ok"}, {"type": "nope"}, {"type": "p", "text": "never reached"}]}`
	_, err := ParseBlocks(decode(t, input))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := AsFormatError(err); !ok {
		t.Errorf("error is %T, want *FormatError", err)
	}
}

func TestParseBlocks_MissingOrWrongType(t *testing.T) {
	if _, err := ParseBlocks(decode(t, `{"metadata": {}}`)); err == nil {
		t.Error("missing blocks should fail")
	}
	if _, err := ParseBlocks(decode(t, `{"blocks": "nope"}`)); err == nil {
		t.Error("non-array blocks should fail")
	}
}

func TestParse_Document(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Metadata.Title != "My Document" {
		t.Errorf("title = %q", doc.Metadata.Title)
	}
	if len(doc.Blocks) != 3 {
		t.Errorf("len(blocks) = %d, want 3", len(doc.Blocks))
	}
	cb := doc.Blocks[2].(Checkbox)
	if cb.Text != "Learn Dart 3" || cb.Checked {
		t.Errorf("checkbox = %+v", cb)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if _, ok := AsFormatError(err); !ok {
		t.Fatalf("err = %v, want FormatError", err)
	}
}

func TestParse_Idempotent(t *testing.T) {
	a, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parses differ:\n%+v\n%+v", a, b)
	}
}
