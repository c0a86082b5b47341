// Package store persists feed subscriptions and the episode GUIDs
// already seen for each show, standing in for the host application's
// subscription list when spotcast runs standalone.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages subscriptions using SQLite
type Store struct {
	db *sql.DB
}

// Subscription represents a subscribed show
type Subscription struct {
	ShowID  string
	URL     string
	Title   string
	AddedAt time.Time
}

// Open creates a subscription store backed by SQLite
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool size to 1 for in-memory databases to ensure consistency
	// For file-based databases, this still works well for our use case
	db.SetMaxOpenConns(1)

	// Configure SQLite for optimal performance and safety
	pragmas := []string{
		"PRAGMA foreign_keys = ON",    // Enforce foreign key constraints
		"PRAGMA busy_timeout = 10000", // Wait up to 10 seconds on lock
		"PRAGMA synchronous = NORMAL", // Balance between safety and performance
		"PRAGMA journal_mode = WAL",   // Write-Ahead Logging for concurrent access
		"PRAGMA temp_store = MEMORY",  // Use memory for temp tables
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	// Create the schema
	schema := `
		CREATE TABLE IF NOT EXISTS subscriptions (
			show_id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			added_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE TABLE IF NOT EXISTS seen_episodes (
			show_id TEXT NOT NULL REFERENCES subscriptions(show_id) ON DELETE CASCADE,
			guid TEXT NOT NULL,
			first_seen INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
			PRIMARY KEY (show_id, guid)
		);

		CREATE INDEX IF NOT EXISTS idx_seen_show ON seen_episodes(show_id);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add subscribes to a show. Returns an error if the show is already
// subscribed.
func (s *Store) Add(ctx context.Context, sub Subscription) error {
	addedAt := sub.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now()
	}

	query := `
		INSERT OR IGNORE INTO subscriptions (show_id, url, title, added_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query, sub.ShowID, sub.URL, sub.Title, addedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("already subscribed to show %s", sub.ShowID)
	}

	return nil
}

// Remove unsubscribes from a show and drops its seen episodes.
func (s *Store) Remove(ctx context.Context, showID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE show_id = ?", showID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("not subscribed to show %s", showID)
	}

	return nil
}

// List returns all subscriptions, oldest first.
func (s *Store) List(ctx context.Context) ([]Subscription, error) {
	query := `
		SELECT show_id, url, title, added_at
		FROM subscriptions
		ORDER BY added_at ASC, show_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		var addedUnix int64

		if err := rows.Scan(&sub.ShowID, &sub.URL, &sub.Title, &addedUnix); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}

		sub.AddedAt = time.Unix(addedUnix, 0)
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// SetTitle updates the stored title for a show. Titles start empty and
// are filled in once the first refresh resolves the show's metadata.
func (s *Store) SetTitle(ctx context.Context, showID, title string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE subscriptions SET title = ? WHERE show_id = ?", title, showID)
	if err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}
	return nil
}

// SeenGUIDs returns the episode GUIDs already recorded for a show.
func (s *Store) SeenGUIDs(ctx context.Context, showID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT guid FROM seen_episodes WHERE show_id = ?", showID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seen episodes: %w", err)
	}
	defer rows.Close()

	var guids []string
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, fmt.Errorf("failed to scan guid: %w", err)
		}
		guids = append(guids, guid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seen episodes: %w", err)
	}

	return guids, nil
}

// MarkSeen records episode GUIDs for a show so later refreshes don't
// report them as new again.
func (s *Store) MarkSeen(ctx context.Context, showID string, guids []string) error {
	if len(guids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO seen_episodes (show_id, guid) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, guid := range guids {
		if _, err := stmt.ExecContext(ctx, showID, guid); err != nil {
			return fmt.Errorf("failed to mark %s seen: %w", guid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
