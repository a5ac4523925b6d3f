package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"medialib/internal/model"
)

// SQLiteStore keeps the snapshot in a single-file SQLite database.
type SQLiteStore struct {
	conn *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens or creates the database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL keeps the rare snapshot write from blocking readers.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		short_label TEXT NOT NULL,
		link TEXT NOT NULL,
		category TEXT NOT NULL,
		media_type TEXT NOT NULL,
		content_id TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS snapshot_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLiteStore) SaveSnapshot(entries []model.CatalogEntry, loadedAt time.Time) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO entries
		(position, title, short_label, link, category, media_type, content_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, e := range entries {
		if _, err := stmt.Exec(i, e.Title, e.ShortLabel, e.Link, e.Category, e.MediaType, e.ContentID); err != nil {
			tx.Rollback()
			return err
		}
	}
	if _, err := tx.Exec(
		"INSERT INTO snapshot_meta (key, value) VALUES ('loaded_at', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		loadedAt.UTC().Format(time.RFC3339),
	); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadSnapshot() ([]model.CatalogEntry, time.Time, error) {
	var raw string
	err := s.conn.QueryRow("SELECT value FROM snapshot_meta WHERE key = 'loaded_at'").Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	loadedAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse loaded_at: %w", err)
	}

	rows, err := s.conn.Query(`SELECT title, short_label, link, category, media_type, content_id
		FROM entries ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var entries []model.CatalogEntry
	for rows.Next() {
		var e model.CatalogEntry
		if err := rows.Scan(&e.Title, &e.ShortLabel, &e.Link, &e.Category, &e.MediaType, &e.ContentID); err != nil {
			return nil, time.Time{}, err
		}
		entries = append(entries, e)
	}
	return entries, loadedAt, rows.Err()
}
