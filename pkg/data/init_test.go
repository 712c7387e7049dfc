package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitDuckDB(t *testing.T) {
	db, err := InitDuckDB("")
	if err != nil {
		t.Fatalf("Failed to initialize DB: %v", err)
	}
	defer db.Close()

	// Verify tables exist
	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'chapter_contents'`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	if tableCount != 1 {
		t.Errorf("Expected 1 table, got %d", tableCount)
	}
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	// Use nested directory that doesn't exist
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("DB file was not created")
	}
}

func TestNewCacheIsIsolated(t *testing.T) {
	first, err := NewCache(0)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer first.Close()

	second, err := NewCache(0)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer second.Close()

	if err := first.Put(&ChapterContent{ChapterNumber: 1, FullText: "text", AudioURL: "url"}); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	got, err := second.Get(1)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got != nil {
		t.Error("Expected in-memory caches not to share entries")
	}
}
