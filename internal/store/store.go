package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"dugout/internal/core"
)

// Store is the SQLite-backed sink for scored news articles.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store instance with a SQLite database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "dugout.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the articles table
func (s *Store) initialize() error {
	articlesTable := `
	CREATE TABLE IF NOT EXISTS articles (
		title TEXT,
		date TEXT,
		author TEXT,
		url TEXT,
		source TEXT,
		sentiment REAL
	);`

	if _, err := s.db.Exec(articlesTable); err != nil {
		return fmt.Errorf("failed to create articles table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendArticles inserts one row per article, in input order. The
// table is a pure append sink: no uniqueness constraint, no conflict
// handling, so overlapping runs produce duplicate rows. An empty
// slice is a no-op.
func (s *Store) AppendArticles(articles []core.Article) error {
	if len(articles) == 0 {
		return nil
	}

	query := `INSERT INTO articles (title, date, author, url, source, sentiment) VALUES (?, ?, ?, ?, ?, ?)`
	for _, article := range articles {
		date := ""
		if !article.PublishedAt.IsZero() {
			date = article.PublishedAt.UTC().Format(time.RFC3339)
		}
		_, err := s.db.Exec(query,
			article.Title,
			date,
			article.Author,
			article.URL,
			article.SourceName,
			article.SentimentScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}
	}
	return nil
}

// StoreStats represents stored-article statistics
type StoreStats struct {
	ArticleCount int
	StoreSize    int64
	LastUpdated  time.Time
}

// GetStats returns statistics about the article table
func (s *Store) GetStats() (*StoreStats, error) {
	stats := &StoreStats{}

	err := s.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&stats.ArticleCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get article count: %w", err)
	}

	// Get store size (file size)
	if fileInfo, err := os.Stat(s.path); err == nil {
		stats.StoreSize = fileInfo.Size()
		stats.LastUpdated = fileInfo.ModTime()
	}

	return stats, nil
}

// Clear removes all stored articles
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM articles"); err != nil {
		return fmt.Errorf("failed to clear articles table: %w", err)
	}

	// Vacuum to reclaim space
	if _, err := s.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	return nil
}
