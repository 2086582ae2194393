package index

import (
	"os"
	"testing"
	"time"

	"github.com/calder/quire/internal/document"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "quire-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleBlocks() []document.Block {
	return []document.Block{
		document.Header{Text: "Chapter 1"},
		document.Paragraph{Text: "Some prose."},
		document.Checkbox{Text: "Learn", Checked: true},
		document.Checkbox{Text: "Practice", Checked: false},
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents`).Scan(&count); err != nil {
		t.Fatalf("documents table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM blocks`).Scan(&count); err != nil {
		t.Fatalf("blocks table missing: %v", err)
	}
}

func TestUpsertAndGetDocument(t *testing.T) {
	db := testDB(t)
	modified := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	row := DocumentRow{
		Path:      "hello.json",
		Title:     "Hello World",
		Modified:  modified,
		Checksum:  "abc123",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertDocument(row, "body text", sampleBlocks()); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	got, err := db.GetDocument("hello.json")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got == nil {
		t.Fatal("document not found after upsert")
	}
	if got.Checksum != "abc123" {
		t.Errorf("checksum = %q, want %q", got.Checksum, "abc123")
	}
	if !got.Modified.Equal(modified) {
		t.Errorf("modified = %v, want %v", got.Modified, modified)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	db := testDB(t)
	got, err := db.GetDocument("nonexistent.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil row, got %+v", got)
	}
}

func TestBlockRowsPreserveOrder(t *testing.T) {
	db := testDB(t)
	row := DocumentRow{Path: "ord.json", Modified: time.Now(), UpdatedAt: time.Now()}
	if err := db.UpsertDocument(row, "", sampleBlocks()); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	rows, err := db.conn.Query(`SELECT position, type FROM blocks WHERE path = ? ORDER BY position`, "ord.json")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	wantTypes := []string{"h1", "p", "checkbox", "checkbox"}
	i := 0
	for rows.Next() {
		var pos int
		var kind string
		if err := rows.Scan(&pos, &kind); err != nil {
			t.Fatal(err)
		}
		if pos != i {
			t.Errorf("position = %d, want %d", pos, i)
		}
		if kind != wantTypes[i] {
			t.Errorf("type at %d = %q, want %q", i, kind, wantTypes[i])
		}
		i++
	}
	if i != len(wantTypes) {
		t.Errorf("block rows = %d, want %d", i, len(wantTypes))
	}
}

func TestDeleteDocument(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "del.json", Checksum: "x", Modified: time.Now(), UpdatedAt: time.Now()}, "body", sampleBlocks())

	if err := db.DeleteDocument("del.json"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	got, _ := db.GetDocument("del.json")
	if got != nil {
		t.Errorf("deleted document still present: %+v", got)
	}
	var count int
	_ = db.conn.QueryRow(`SELECT count(*) FROM blocks WHERE path = ?`, "del.json").Scan(&count)
	if count != 0 {
		t.Errorf("expected 0 block rows after delete, got %d", count)
	}
}

func TestUpsertReplacesBlocks(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDocument(DocumentRow{Path: "up.json", Title: "Old", Checksum: "1", Modified: now, UpdatedAt: now}, "old", sampleBlocks())
	_ = db.UpsertDocument(DocumentRow{Path: "up.json", Title: "New", Checksum: "2", Modified: now, UpdatedAt: now}, "new",
		[]document.Block{document.Paragraph{Text: "only one"}})

	got, _ := db.GetDocument("up.json")
	if got == nil || got.Checksum != "2" {
		t.Fatalf("row = %+v, want checksum 2", got)
	}
	var count int
	_ = db.conn.QueryRow(`SELECT count(*) FROM blocks WHERE path = ?`, "up.json").Scan(&count)
	if count != 1 {
		t.Errorf("block rows = %d, want 1", count)
	}
}

func TestListDocuments(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDocument(DocumentRow{Path: "b.json", Title: "Beta", Modified: now, UpdatedAt: now}, "", nil)
	_ = db.UpsertDocument(DocumentRow{Path: "a.json", Title: "Alpha", Modified: now, UpdatedAt: now}, "", nil)

	rows, total, err := db.ListDocuments(10, 0, "path")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(rows) != 2 || rows[0].Path != "a.json" {
		t.Errorf("rows = %+v, want a.json first", rows)
	}
}

func TestStats(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDocument(DocumentRow{Path: "s1.json", Modified: now, UpdatedAt: now}, "", sampleBlocks())
	_ = db.UpsertDocument(DocumentRow{Path: "s2.json", Modified: now, UpdatedAt: now}, "",
		[]document.Block{document.Checkbox{Text: "x", Checked: true}})

	s, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Documents != 2 {
		t.Errorf("documents = %d, want 2", s.Documents)
	}
	if s.Headers != 1 || s.Paragraphs != 1 {
		t.Errorf("headers = %d, paragraphs = %d, want 1 each", s.Headers, s.Paragraphs)
	}
	if s.Checkboxes != 3 || s.Checked != 2 {
		t.Errorf("checkboxes = %d, checked = %d, want 3 and 2", s.Checkboxes, s.Checked)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "s.json", Title: "Search Me", Checksum: "1", Modified: time.Now(), UpdatedAt: time.Now()},
		"uniqueword appears here", nil)

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.json" {
		t.Errorf("search results = %+v, want 1 hit for s.json", results)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDocument(DocumentRow{Path: "a.json", Checksum: "1", Modified: now, UpdatedAt: now}, "", nil)
	_ = db.UpsertDocument(DocumentRow{Path: "b.json", Checksum: "2", Modified: now, UpdatedAt: now}, "", nil)

	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(cs) != 2 || cs["a.json"] != "1" || cs["b.json"] != "2" {
		t.Errorf("checksums = %v", cs)
	}
}
