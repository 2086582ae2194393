// Package docservice coordinates storage and catalog operations over
// parsed block documents.
package docservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/calder/quire/internal/apperr"
	"github.com/calder/quire/internal/checksum"
	"github.com/calder/quire/internal/document"
	"github.com/calder/quire/internal/index"
	"github.com/calder/quire/internal/reldate"
	"github.com/calder/quire/internal/render"
	"github.com/calder/quire/internal/storage"
)

// BlockPayload is the wire form of one block, tagged the same way as the
// input format.
type BlockPayload struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Checked *bool  `json:"checked,omitempty"`
}

// DocumentDetail is the full representation of a parsed document.
type DocumentDetail struct {
	Path          string         `json:"path"`
	Title         string         `json:"title"`
	Modified      time.Time      `json:"modified"`
	ModifiedLabel string         `json:"modified_label"`
	Blocks        []BlockPayload `json:"blocks"`
	Checksum      string         `json:"checksum"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem struct {
	Path          string    `json:"path"`
	Title         string    `json:"title"`
	Modified      time.Time `json:"modified"`
	ModifiedLabel string    `json:"modified_label"`
	Checksum      string    `json:"checksum"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidationReport summarizes a successfully validated document.
type ValidationReport struct {
	Title      string    `json:"title"`
	Modified   time.Time `json:"modified"`
	Blocks     int       `json:"blocks"`
	Headers    int       `json:"headers"`
	Paragraphs int       `json:"paragraphs"`
	Checkboxes int       `json:"checkboxes"`
}

// Service coordinates storage and catalog operations.
type Service struct {
	store storage.Provider
	db    *index.DB
	now   func() time.Time
}

// NewService creates a new document service.
func NewService(store storage.Provider, db *index.DB) *Service {
	return &Service{store: store, db: db, now: time.Now}
}

// GetDocument reads a document from storage and parses it into a detail view.
func (s *Service) GetDocument(_ context.Context, path string) (*DocumentDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildDetail(path, data)
}

// CreateDocument validates, writes, and indexes a new document.
func (s *Service) CreateDocument(_ context.Context, path string, content []byte) (*DocumentDetail, error) {
	// Validate before touching storage; malformed input never lands on disk.
	if _, err := document.Parse(content); err != nil {
		return nil, err
	}
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// UpdateDocument writes updated content with optimistic concurrency.
func (s *Service) UpdateDocument(_ context.Context, path string, content []byte, ifMatch string) (*DocumentDetail, error) {
	if _, err := document.Parse(content); err != nil {
		return nil, err
	}
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// DeleteDocument removes a document from storage and catalog.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.db.DeleteDocument(path)
}

// ListDocuments returns paginated catalog entries.
func (s *Service) ListDocuments(_ context.Context, limit, offset int, sort string) ([]DocumentListItem, int, error) {
	rows, total, err := s.db.ListDocuments(limit, offset, sort)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	items := make([]DocumentListItem, len(rows))
	for i, r := range rows {
		items[i] = DocumentListItem{
			Path:          r.Path,
			Title:         r.Title,
			Modified:      r.Modified,
			ModifiedLabel: reldate.Format(r.Modified, now),
			Checksum:      r.Checksum,
			UpdatedAt:     r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the catalog.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Stats returns library-wide block statistics.
func (s *Service) Stats(_ context.Context) (*index.LibraryStats, error) {
	return s.db.Stats()
}

// Validate parses content without storing it and reports what was found.
func (s *Service) Validate(_ context.Context, content []byte) (*ValidationReport, error) {
	doc, err := document.Parse(content)
	if err != nil {
		return nil, err
	}
	rep := &ValidationReport{
		Title:    doc.Metadata.Title,
		Modified: doc.Metadata.Modified,
		Blocks:   len(doc.Blocks),
	}
	for _, b := range doc.Blocks {
		switch b.(type) {
		case document.Header:
			rep.Headers++
		case document.Paragraph:
			rep.Paragraphs++
		case document.Checkbox:
			rep.Checkboxes++
		default:
			panic(fmt.Sprintf("docservice: unhandled block variant %T", b))
		}
	}
	return rep, nil
}

// Render reads a document and returns its plain-text rendering.
func (s *Service) Render(_ context.Context, path string) (string, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return "", err
	}
	return render.Text(doc, s.now()), nil
}

// IndexFile parses data and upserts it into the catalog.
// Exported so that sync and watcher callers can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}
	row := index.DocumentRow{
		Path:      path,
		Title:     doc.Metadata.Title,
		Modified:  doc.Metadata.Modified,
		Checksum:  checksum.Sum(data),
		UpdatedAt: s.now(),
	}
	return s.db.UpsertDocument(row, render.Blocks(doc.Blocks), doc.Blocks)
}

// buildDetail constructs a DocumentDetail from raw data without re-reading
// the file.
func (s *Service) buildDetail(path string, data []byte) (*DocumentDetail, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &DocumentDetail{
		Path:          path,
		Title:         doc.Metadata.Title,
		Modified:      doc.Metadata.Modified,
		ModifiedLabel: reldate.Format(doc.Metadata.Modified, now),
		Blocks:        toPayloads(doc.Blocks),
		Checksum:      checksum.Sum(data),
		UpdatedAt:     now,
	}, nil
}

// toPayloads converts parsed blocks to their wire form, preserving order.
func toPayloads(blocks []document.Block) []BlockPayload {
	out := make([]BlockPayload, len(blocks))
	for i, b := range blocks {
		switch v := b.(type) {
		case document.Header:
			out[i] = BlockPayload{Type: "h1", Text: v.Text}
		case document.Paragraph:
			out[i] = BlockPayload{Type: "p", Text: v.Text}
		case document.Checkbox:
			checked := v.Checked
			out[i] = BlockPayload{Type: "checkbox", Text: v.Text, Checked: &checked}
		default:
			panic(fmt.Sprintf("docservice: unhandled block variant %T", b))
		}
	}
	return out
}
