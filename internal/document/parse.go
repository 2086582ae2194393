package document

import (
	"encoding/json"
	"time"
)

// modifiedLayout is the calendar-date format of the "modified" field.
const modifiedLayout = "2006-01-02"

// Parse decodes raw JSON text into a Document. Validation is
// all-or-nothing: any schema violation yields a FormatError and no partial
// result. Unknown extra keys in objects are ignored; required keys are
// checked strictly for presence and type.
func Parse(data []byte) (*Document, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, formatErrorf("invalid JSON: %v", err)
	}
	meta, err := ParseMetadata(v)
	if err != nil {
		return nil, err
	}
	blocks, err := ParseBlocks(v)
	if err != nil {
		return nil, err
	}
	return &Document{Metadata: meta, Blocks: blocks}, nil
}

// ParseMetadata extracts the "metadata" object from a decoded JSON value.
// The object must carry a string "title" and a "modified" date string in
// YYYY-MM-DD form.
func ParseMetadata(v any) (Metadata, error) {
	root, ok := v.(map[string]any)
	if !ok {
		return Metadata{}, formatErrorf("root is not an object")
	}
	raw, ok := root["metadata"]
	if !ok {
		return Metadata{}, formatErrorf("missing %q key", "metadata")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Metadata{}, formatErrorf("%q is not an object", "metadata")
	}
	title, ok := obj["title"].(string)
	if !ok {
		return Metadata{}, formatErrorf("metadata %q is missing or not a string", "title")
	}
	modRaw, ok := obj["modified"].(string)
	if !ok {
		return Metadata{}, formatErrorf("metadata %q is missing or not a string", "modified")
	}
	modified, err := time.Parse(modifiedLayout, modRaw)
	if err != nil {
		return Metadata{}, formatErrorf("metadata %q is not a %s date: %q", "modified", modifiedLayout, modRaw)
	}
	return Metadata{Title: title, Modified: modified}, nil
}

// ParseBlocks extracts and decodes the "blocks" array from a decoded JSON
// value. Input order is preserved; an empty array is valid. Decoding stops
// at the first invalid element.
func ParseBlocks(v any) ([]Block, error) {
	root, ok := v.(map[string]any)
	if !ok {
		return nil, formatErrorf("root is not an object")
	}
	raw, ok := root["blocks"]
	if !ok {
		return nil, formatErrorf("missing %q key", "blocks")
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, formatErrorf("%q is not an array", "blocks")
	}
	blocks := make([]Block, 0, len(arr))
	for _, el := range arr {
		b, err := ParseBlock(el)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// ParseBlock decodes a single block object, dispatching on its "type" tag.
// Any unrecognized tag, missing tag, or missing/mis-typed required field
// fails with a FormatError.
func ParseBlock(v any) (Block, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, formatErrorf("block is not an object")
	}
	switch t := obj["type"]; t {
	case "h1":
		text, ok := obj["text"].(string)
		if !ok {
			return nil, formatErrorf("h1 block %q is missing or not a string", "text")
		}
		return Header{Text: text}, nil
	case "p":
		text, ok := obj["text"].(string)
		if !ok {
			return nil, formatErrorf("p block %q is missing or not a string", "text")
		}
		return Paragraph{Text: text}, nil
	case "checkbox":
		text, ok := obj["text"].(string)
		if !ok {
			return nil, formatErrorf("checkbox block %q is missing or not a string", "text")
		}
		checked, ok := obj["checked"].(bool)
		if !ok {
			return nil, formatErrorf("checkbox block %q is missing or not a boolean", "checked")
		}
		return Checkbox{Text: text, Checked: checked}, nil
	default:
		return nil, formatErrorf("unrecognized block type %v", t)
	}
}
