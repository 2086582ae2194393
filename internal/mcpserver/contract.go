package mcpserver

// DocumentFormatContract describes the canonical JSON document format that
// LLM consumers should follow when creating or validating documents.
const DocumentFormatContract = `# Quire Document Format Contract

Every document stored in Quire is a single JSON object that MUST follow
this structure.

## Structure

` + "```" + `json
{
  "metadata": {
    "title": "Human-readable title",
    "modified": "2025-01-15"
  },
  "blocks": [
    {"type": "h1", "text": "Section heading"},
    {"type": "p", "text": "Paragraph text."},
    {"type": "checkbox", "text": "Task description", "checked": false}
  ]
}
` + "```" + `

## Rules

1. **Top level is a JSON object** with exactly two required keys:
   ` + "`" + `metadata` + "`" + ` and ` + "`" + `blocks` + "`" + `.
2. **` + "`" + `metadata.title` + "`" + ` is a required string.** It is the primary display
   name everywhere.
3. **` + "`" + `metadata.modified` + "`" + ` is a required string** in ` + "`" + `YYYY-MM-DD` + "`" + ` format.
4. **` + "`" + `blocks` + "`" + ` is a required array** of block objects. It may be empty.
   Block order is preserved exactly as written.
5. **Every block has a ` + "`" + `type` + "`" + ` field** that is one of ` + "`" + `h1` + "`" + `, ` + "`" + `p` + "`" + ` or
   ` + "`" + `checkbox` + "`" + `. No other types are accepted.
6. **` + "`" + `h1` + "`" + ` and ` + "`" + `p` + "`" + ` blocks require a string ` + "`" + `text` + "`" + ` field.**
7. **` + "`" + `checkbox` + "`" + ` blocks require a string ` + "`" + `text` + "`" + ` field and a boolean
   ` + "`" + `checked` + "`" + ` field.**
8. **Unknown extra keys are ignored**, but any missing required field or a
   field of the wrong JSON type makes the whole document invalid.
9. **File paths** end with ` + "`" + `.json` + "`" + ` and use forward slashes.
10. **Encoding** is UTF-8.

Call the ` + "`" + `validate_document` + "`" + ` tool to check content before creating a
document.

## Example

` + "```" + `json
{
  "metadata": {
    "title": "Weekly standup 2025-01-20",
    "modified": "2025-01-20"
  },
  "blocks": [
    {"type": "h1", "text": "Weekly standup 2025-01-20"},
    {"type": "p", "text": "Attendees: Alice, Bob."},
    {"type": "checkbox", "text": "Review the design doc", "checked": true},
    {"type": "checkbox", "text": "Update the roadmap", "checked": false}
  ]
}
` + "```" + `
`
