package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS chapter_contents (
	chapter_number INTEGER PRIMARY KEY,
	full_text      VARCHAR NOT NULL,
	audio_url      VARCHAR NOT NULL,
	fetched_at     TIMESTAMP NOT NULL
)`

// InitDuckDB opens a DuckDB database and creates the schema. An empty path
// opens an in-memory database that disappears with the process.
func InitDuckDB(path string) (*sql.DB, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Cache maps chapter numbers to fetched content for the lifetime of the session.
type Cache struct {
	db     *sql.DB
	maxAge time.Duration
	now    func() time.Time
}

// NewCache opens an in-memory cache. A zero maxAge keeps entries forever.
func NewCache(maxAge time.Duration) (*Cache, error) {
	db, err := InitDuckDB("")
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, maxAge: maxAge, now: time.Now}, nil
}

// Get returns nil when the chapter has not been fetched, or its entry has expired.
func (c *Cache) Get(number int) (*ChapterContent, error) {
	row := c.db.QueryRow(
		`SELECT chapter_number, full_text, audio_url, fetched_at FROM chapter_contents WHERE chapter_number = ?`,
		number,
	)

	var content ChapterContent
	err := row.Scan(&content.ChapterNumber, &content.FullText, &content.AudioURL, &content.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter %d: %w", number, err)
	}

	if c.maxAge > 0 && c.now().Sub(content.FetchedAt) > c.maxAge {
		return nil, nil
	}
	return &content, nil
}

// Put stores content, replacing any previous entry. FetchedAt is stamped when unset.
func (c *Cache) Put(content *ChapterContent) error {
	if content == nil {
		return fmt.Errorf("content cannot be nil")
	}
	if content.FetchedAt.IsZero() {
		content.FetchedAt = c.now()
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO chapter_contents (chapter_number, full_text, audio_url, fetched_at) VALUES (?, ?, ?, ?)`,
		content.ChapterNumber, content.FullText, content.AudioURL, content.FetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store chapter %d: %w", content.ChapterNumber, err)
	}
	return nil
}

func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM chapter_contents`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
