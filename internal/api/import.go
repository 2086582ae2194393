package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/calder/quire/internal/apperr"
	"github.com/calder/quire/internal/docservice"
	"github.com/calder/quire/internal/document"
)

const maxImportBytes = 10 << 20 // 10 MB

// ImportHandler accepts document file uploads.
type ImportHandler struct {
	svc *docservice.Service
}

// NewImportHandler creates a handler backed by the document service.
func NewImportHandler(svc *docservice.Service) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// safeName validates that the target name is a plain .json filename
// (no path separators, no traversal).
func safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	if !strings.HasSuffix(cleaned, ".json") {
		return "", fmt.Errorf("filename must end with .json: %s", name)
	}
	return cleaned, nil
}

// Upload handles POST /import (multipart/form-data, field "file").
// The uploaded content is parsed before it is stored; malformed documents
// are rejected with 422 and never land in the library.
//
//	@Summary		Import a document file into the library
//	@Tags			documents
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Document file (.json)"
//	@Success		201		{object}	ImportResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/import [post]
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	name, err := safeName(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	doc, err := h.svc.CreateDocument(r.Context(), name, content)
	if err != nil {
		if fe, ok := document.AsFormatError(err); ok {
			writeFormatError(w, fe)
			return
		}
		if errors.Is(err, apperr.ErrAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorBody("document already exists"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to store document"))
		return
	}

	writeJSON(w, http.StatusCreated, ImportResponse{
		Path:     name,
		Size:     int64(len(content)),
		Document: doc,
	})
}
