// Package history persists the searches a user has run in a local SQLite
// database so they can be listed from the CLI and the API.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/shencore/shen/pkg/db"
	"github.com/shencore/shen/pkg/log"
	"github.com/shencore/shen/pkg/search"
)

var logger = log.ForService("history")

// DefaultLimit is used by Recent when limit is not positive.
const DefaultLimit = 20

// Entry is one recorded search call.
type Entry struct {
	ID           int64       `json:"id"`
	Term         string      `json:"term"`
	Type         search.Type `json:"type"`
	Page         int         `json:"page"`
	ItemCount    int         `json:"item_count"`
	TotalResults string      `json:"total_results"`
	SearchTime   float64     `json:"search_time"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Stats summarizes the history database.
type Stats struct {
	Searches    int64     `json:"searches"`
	UniqueTerms int64     `json:"unique_terms"`
	Last        time.Time `json:"last,omitempty"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at dbPath and
// migrates it to the current schema.
func Open(dbPath string) (*Store, error) {
	conn, err := OpenDB(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.InitializeDatabase(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{db: conn, now: time.Now}, nil
}

// OpenDB opens the database at dbPath with the store's pragmas applied but
// without migrating it.
func OpenDB(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	return conn, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a completed search. CreatedAt defaults to now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (term, type, page, item_count, total_results, search_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Term, string(e.Type), e.Page, e.ItemCount, e.TotalResults, e.SearchTime, e.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("recording search: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, term, type, page, item_count, total_results, search_time, created_at
		FROM searches
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warnf("failed to close rows: %v", err)
		}
	}()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var typ string
		if err := rows.Scan(&e.ID, &e.Term, &typ, &e.Page, &e.ItemCount, &e.TotalResults, &e.SearchTime, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Type = search.Type(typ)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns aggregate counts over the whole history.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var last sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT term),
			(SELECT created_at FROM searches ORDER BY id DESC LIMIT 1)
		FROM searches
	`).Scan(&st.Searches, &st.UniqueTerms, &last)
	if err != nil {
		return st, fmt.Errorf("querying history stats: %w", err)
	}
	if last.Valid {
		st.Last = parseTime(last.String)
	}
	return st, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM searches")
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}

// parseTime reads a DATETIME returned from a subquery, which loses its
// declared type and comes back as text.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
