package index

import "github.com/calder/quire/internal/document"

// Catalog defines the interface for document catalog operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type Catalog interface {
	UpsertDocument(row DocumentRow, body string, blocks []document.Block) error
	DeleteDocument(path string) error
	GetDocument(path string) (*DocumentRow, error)
	ListDocuments(limit, offset int, sort string) ([]DocumentRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Stats() (*LibraryStats, error)
	AllPaths() (map[string]struct{}, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies Catalog at compile time.
var _ Catalog = (*DB)(nil)
