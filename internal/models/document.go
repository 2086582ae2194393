// Package models defines shared domain types for Quire.
package models

import "time"

// DocumentFile is the lightweight representation of a stored document file,
// returned by storage listing operations.
type DocumentFile struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
