package staging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"captioner/internal/staging"
)

func TestNewDocumentPath(t *testing.T) {
	first := staging.NewDocumentPath("/work/staging")
	second := staging.NewDocumentPath("/work/staging")

	if filepath.Dir(first) != "/work/staging" {
		t.Fatalf("unexpected directory %q", filepath.Dir(first))
	}
	if !strings.HasSuffix(first, ".ass") {
		t.Fatalf("expected .ass suffix, got %q", first)
	}
	if first == second {
		t.Fatal("paths must be unique per call")
	}
}

func TestListOrdersOldestFirst(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "older.ass")
	newer := filepath.Join(dir, "newer.ass")
	writeDoc(t, older)
	writeDoc(t, newer)
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	// Non-document entries are invisible to List.
	writeDoc(t, filepath.Join(dir, "notes.txt"))
	if err := os.Mkdir(filepath.Join(dir, "sub.ass"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	docs, err := staging.List(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Path != older || docs[1].Path != newer {
		t.Fatalf("unexpected order: %q then %q", docs[0].Path, docs[1].Path)
	}
}

func TestListMissingDirectory(t *testing.T) {
	docs, err := staging.List(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestSweepRemovesOnlyStaleDocuments(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.ass")
	fresh := filepath.Join(dir, "fresh.ass")
	other := filepath.Join(dir, "keep.srt")
	writeDoc(t, stale)
	writeDoc(t, fresh)
	writeDoc(t, other)
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	result := staging.Sweep(dir, staging.DefaultMaxAge, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected sweep errors: %+v", result.Errors)
	}
	if len(result.Removed) != 1 || result.Removed[0] != stale {
		t.Fatalf("unexpected removals: %v", result.Removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale document still present: %v", err)
	}
	for _, path := range []string{fresh, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s untouched: %v", path, err)
		}
	}
}

func writeDoc(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("[Script Info]\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
