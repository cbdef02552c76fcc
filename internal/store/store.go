package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

// Setting keys shared with the presenter and the CLI.
const (
	KeyStartTime = "startDateTime"
	KeyEndTime   = "endDateTime"
	KeyLanguage  = "language"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("setting not found")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	-- settings holds the session window and the language preference
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Setting is a row from the settings table.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return set(ctx, s.db, key, value)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func set(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, normalizeValue(value), time.Now())
	return err
}

// Remove deletes keys. Missing keys are ignored.
func (s *Store) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
			return err
		}
	}
	return nil
}

// List returns every setting ordered by key.
func (s *Store) List(ctx context.Context) ([]Setting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		if err := rows.Scan(&st.Key, &st.Value, &st.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// Times returns the stored session boundaries as written by SaveTimes. A
// boundary that was never saved comes back as "".
func (s *Store) Times(ctx context.Context) (start, end string, err error) {
	start, err = s.optional(ctx, KeyStartTime)
	if err != nil {
		return "", "", err
	}
	end, err = s.optional(ctx, KeyEndTime)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

// SaveTimes stores both session boundaries in one transaction.
func (s *Store) SaveTimes(ctx context.Context, start, end string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := set(ctx, tx, KeyStartTime, start); err != nil {
		return err
	}
	if err := set(ctx, tx, KeyEndTime, end); err != nil {
		return err
	}
	return tx.Commit()
}

// ClearTimes removes both session boundaries.
func (s *Store) ClearTimes(ctx context.Context) error {
	return s.Remove(ctx, KeyStartTime, KeyEndTime)
}

// Language returns the stored language preference, or "" when unset.
func (s *Store) Language(ctx context.Context) (string, error) {
	return s.optional(ctx, KeyLanguage)
}

// SaveLanguage stores the language preference. An empty code clears it.
func (s *Store) SaveLanguage(ctx context.Context, code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return s.Remove(ctx, KeyLanguage)
	}
	return s.Set(ctx, KeyLanguage, code)
}

func (s *Store) optional(ctx context.Context, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeValue folds compatibility forms (full-width digits and colons,
// no-break spaces) with NFKC and trims whitespace, so a timestamp typed
// through an IME is stored in the form ParseTimestamp reads back.
func normalizeValue(value string) string {
	return strings.TrimSpace(norm.NFKC.String(value))
}
