// Package staging manages the composed subtitle documents a burn-in render
// stages on disk before handing them to the encoder.
package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"captioner/internal/logging"
)

// DefaultMaxAge is how old a staged document must be before Sweep removes
// it. Documents younger than this may belong to a render still in flight.
const DefaultMaxAge = 24 * time.Hour

const documentExt = ".ass"

// NewDocumentPath allocates a unique path for a staged subtitle document
// inside dir.
func NewDocumentPath(dir string) string {
	return filepath.Join(dir, uuid.NewString()+documentExt)
}

// Document describes one staged subtitle document.
type Document struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// List returns the staged documents in dir, oldest first. A missing
// directory lists as empty. Only subtitle documents are reported; anything
// else in the directory is left alone.
func List(dir string) ([]Document, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != documentExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, Document{
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ModTime.Before(docs[j].ModTime)
	})
	return docs, nil
}

// SweepResult reports what a sweep removed and what it could not.
type SweepResult struct {
	Removed []string
	Errors  []SweepError
}

// SweepError pairs a document path with its removal error.
type SweepError struct {
	Path string
	Err  error
}

// Sweep removes staged documents older than maxAge. Crashed renders and
// --keep-subtitles runs leave documents behind; sweeping keeps the staging
// directory from growing without bound. A nil logger disables logging.
func Sweep(dir string, maxAge time.Duration, logger *slog.Logger) SweepResult {
	if logger == nil {
		logger = logging.NewNop()
	}

	var result SweepResult
	docs, err := List(dir)
	if err != nil {
		result.Errors = append(result.Errors, SweepError{Path: dir, Err: err})
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, doc := range docs {
		if !doc.ModTime.Before(cutoff) {
			continue
		}
		if err := os.Remove(doc.Path); err != nil {
			result.Errors = append(result.Errors, SweepError{Path: doc.Path, Err: err})
			logger.Warn("failed to remove stale staged document",
				logging.String("path", doc.Path),
				logging.Error(err))
			continue
		}
		result.Removed = append(result.Removed, doc.Path)
		logger.Info("removed stale staged document",
			logging.String("path", doc.Path),
			logging.Duration("age", time.Since(doc.ModTime)))
	}
	return result
}
