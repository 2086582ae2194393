package api

import (
	"github.com/calder/quire/internal/docservice"
	"github.com/calder/quire/internal/index"
)

// CreateDocumentRequest is the request body for creating a document.
type CreateDocumentRequest struct {
	Path    string `json:"path" example:"guides/dart3.json"`
	Content string `json:"content" example:"{\"metadata\":{...},\"blocks\":[...]}"`
}

// UpdateDocumentRequest is the request body for updating a document.
type UpdateDocumentRequest struct {
	Content string `json:"content"`
}

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = docservice.DocumentDetail

// DocumentListItem is a lightweight item in a list response (aliased from the domain layer).
type DocumentListItem = docservice.DocumentListItem

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents"`
	Total     int                `json:"total" example:"42"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// ValidateRequest carries raw document text for parse-only validation.
type ValidateRequest struct {
	Content string `json:"content"`
}

// ImportResponse is returned after a successful document import.
type ImportResponse struct {
	Path     string          `json:"path" example:"guides/dart3.json"`
	Size     int64           `json:"size" example:"512"`
	Document *DocumentDetail `json:"document"`
}
