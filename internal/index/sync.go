package index

import (
	"log/slog"
	"time"

	"github.com/calder/quire/internal/checksum"
	"github.com/calder/quire/internal/document"
	"github.com/calder/quire/internal/render"
	"github.com/calder/quire/internal/storage"
)

// Sync walks the library and brings the catalog up to date:
//   - new/changed files are parsed and upserted
//   - files that no longer parse are removed (the catalog never holds a
//     partially valid document)
//   - files removed from disk are deleted from the catalog
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			// Stale catalog entries for files that stopped parsing are removed.
			if _, ok := document.AsFormatError(err); ok && checksums[m.Path] != "" {
				_ = db.DeleteDocument(m.Path)
			}
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDocument(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses data and upserts it into the catalog.
func indexFile(db *DB, path string, data []byte) error {
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}
	row := DocumentRow{
		Path:      path,
		Title:     doc.Metadata.Title,
		Modified:  doc.Metadata.Modified,
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	}
	return db.UpsertDocument(row, render.Blocks(doc.Blocks), doc.Blocks)
}
