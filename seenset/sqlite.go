package seenset

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the set in a single-table SQLite database. Suited to
// deployments where several pipelines share one seen-set database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the seen_links table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS seen_links (
		link TEXT PRIMARY KEY,
		added_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads all persisted links in insertion order.
func (s *SQLiteStore) Load() (*Set, error) {
	rows, err := s.db.Query("SELECT link FROM seen_links ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query seen links: %w", err)
	}
	defer rows.Close()

	set := NewSet()
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("failed to scan seen link: %w", err)
		}
		set.Add(link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seen links: %w", err)
	}

	return set, nil
}

// Save inserts every link in the set, ignoring ones already present, so a
// full save is idempotent and cheap to run after each item.
func (s *SQLiteStore) Save(set *Set) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO seen_links (link, added_at) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, link := range set.Links() {
		if _, err := stmt.Exec(link, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert seen link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seen links: %w", err)
	}
	return nil
}
