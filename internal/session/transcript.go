package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Transcript persists exchanges to a sqlite database so conversations
// survive restarts. Write-only from the pipeline's point of view; the
// in-memory history remains the source for recall.
type Transcript struct {
	db *sql.DB
}

// OpenTranscript opens (creating if needed) the transcript database.
func OpenTranscript(path string) (*Transcript, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Transcript{db: db}, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS exchanges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			user TEXT NOT NULL,
			response TEXT NOT NULL,
			tag TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_exchanges_session ON exchanges(session_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("transcript migrate: %w", err)
		}
	}
	return nil
}

// Record appends an exchange row for the given session.
func (t *Transcript) Record(sessionID string, ex Exchange) error {
	_, err := t.db.Exec(
		`INSERT INTO exchanges (session_id, created_at, user, response, tag) VALUES (?, ?, ?, ?, ?)`,
		sessionID, ex.At.Format(time.RFC3339), ex.User, ex.Response, ex.Tag,
	)
	return err
}

// Load returns up to limit exchanges for a session, oldest first.
func (t *Transcript) Load(sessionID string, limit int) ([]Exchange, error) {
	rows, err := t.db.Query(
		`SELECT created_at, user, response, tag FROM exchanges
		 WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		var ex Exchange
		var createdAt string
		if err := rows.Scan(&createdAt, &ex.User, &ex.Response, &ex.Tag); err != nil {
			return nil, err
		}
		ex.At, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Reverse to oldest-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Close closes the database.
func (t *Transcript) Close() error {
	return t.db.Close()
}
