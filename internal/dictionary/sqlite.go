package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite keeps protected words in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// Entry is a row of the protected_words table.
type Entry struct {
	ID        string
	Word      string
	CreatedAt time.Time
}

// NewSQLite opens (and migrates) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS protected_words (
		id TEXT PRIMARY KEY,
		word TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add inserts word; adding an existing word is a no-op.
func (s *SQLite) Add(ctx context.Context, word string) error {
	word = normalizeWord(word)
	if word == "" {
		return ErrEmptyWord
	}
	id := fmt.Sprintf("pw_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO protected_words (id, word, created_at) VALUES (?, ?, ?)`,
		id, word, time.Now())
	return err
}

// Remove deletes an entry by word or by ID.
func (s *SQLite) Remove(ctx context.Context, word string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM protected_words WHERE word = ? OR id = ?`,
		normalizeWord(word), word)
	return err
}

// Words returns every protected word in alphabetical order.
func (s *SQLite) Words(ctx context.Context) ([]string, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words, nil
}

// List returns all entries ordered by word.
func (s *SQLite) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, word, created_at FROM protected_words ORDER BY word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Word, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
