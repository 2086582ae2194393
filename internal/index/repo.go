package index

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calder/quire/internal/document"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path      string
	Title     string
	Modified  time.Time
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// LibraryStats summarizes block usage across the catalog.
type LibraryStats struct {
	Documents  int `json:"documents"`
	Headers    int `json:"headers"`
	Paragraphs int `json:"paragraphs"`
	Checkboxes int `json:"checkboxes"`
	Checked    int `json:"checked"`
}

// UpsertDocument inserts or replaces a document, its FTS entry, and its
// block rows within a transaction. Block rows keep input order via the
// position column.
func (db *DB) UpsertDocument(row DocumentRow, body string, blocks []document.Block) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO documents (path, title, modified, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			modified   = excluded.modified,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, row.Path, row.Title, row.Modified, row.Checksum, body, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, row.Path, row.Title, body); err != nil {
		return err
	}

	// Replace block rows: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM blocks WHERE path = ?`, row.Path)
	if len(blocks) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO blocks (path, position, type, text, checked) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare block insert: %w", err)
		}
		defer stmt.Close()
		for i, b := range blocks {
			var kind, text string
			var checked bool
			switch v := b.(type) {
			case document.Header:
				kind, text = "h1", v.Text
			case document.Paragraph:
				kind, text = "p", v.Text
			case document.Checkbox:
				kind, text, checked = "checkbox", v.Text, v.Checked
			default:
				panic(fmt.Sprintf("index: unhandled block variant %T", b))
			}
			if _, err := stmt.Exec(row.Path, i, kind, text, checked); err != nil {
				return fmt.Errorf("index: insert block: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document, its FTS entry, and its block rows.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM blocks WHERE path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// GetDocument returns the catalog row for a path, or nil if not indexed.
func (db *DB) GetDocument(path string) (*DocumentRow, error) {
	var row DocumentRow
	err := db.conn.QueryRow(`
		SELECT path, title, modified, checksum, updated_at
		FROM documents WHERE path = ?
	`, path).Scan(&row.Path, &row.Title, &row.Modified, &row.Checksum, &row.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get document: %w", err)
	}
	return &row, nil
}

// sortColumns whitelists the ListDocuments sort parameter.
var sortColumns = map[string]string{
	"updated_at": "updated_at DESC",
	"modified":   "modified DESC",
	"title":      "title COLLATE NOCASE ASC",
	"path":       "path ASC",
}

// ListDocuments returns catalog rows ordered by the given sort field, plus
// the total row count for pagination.
func (db *DB) ListDocuments(limit, offset int, sort string) ([]DocumentRow, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	order, ok := sortColumns[sort]
	if !ok {
		order = sortColumns["updated_at"]
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count documents: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT path, title, modified, checksum, updated_at
		FROM documents
		ORDER BY `+order+`
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var r DocumentRow
		if err := rows.Scan(&r.Path, &r.Title, &r.Modified, &r.Checksum, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// Stats aggregates block counts across the whole catalog.
func (db *DB) Stats() (*LibraryStats, error) {
	s := &LibraryStats{}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&s.Documents); err != nil {
		return nil, fmt.Errorf("index: stats documents: %w", err)
	}
	err := db.conn.QueryRow(`
		SELECT
			COUNT(CASE WHEN type = 'h1' THEN 1 END),
			COUNT(CASE WHEN type = 'p' THEN 1 END),
			COUNT(CASE WHEN type = 'checkbox' THEN 1 END),
			COUNT(CASE WHEN type = 'checkbox' AND checked = 1 THEN 1 END)
		FROM blocks
	`).Scan(&s.Headers, &s.Paragraphs, &s.Checkboxes, &s.Checked)
	if err != nil {
		return nil, fmt.Errorf("index: stats blocks: %w", err)
	}
	return s, nil
}

// AllPaths returns every indexed document path.
func (db *DB) AllPaths() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT path FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}

// AllChecksums returns a path → checksum map for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
