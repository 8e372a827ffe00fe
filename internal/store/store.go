// Package store handles SQLite persistence of the marks record.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/moyenne/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SlotKey namespaces the persisted record. The suffix is the format tag.
const SlotKey = "moyenneCalc:v1"

// Store wraps SQLite access for the marks slot.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the persisted state. A missing, unreadable or corrupt record
// yields an empty state; failures are logged, never returned.
func (s *Store) Load(ctx context.Context) model.PersistedState {
	blob, ok, err := s.readSlot(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("slot", SlotKey).Msg("failed to read state, starting empty")
		return model.NewState()
	}
	if !ok {
		return model.NewState()
	}
	state, ok := decodeState(blob)
	if !ok {
		s.log.Warn().Str("slot", SlotKey).Msg("discarding malformed state")
	}
	return state
}

// Save overwrites the persisted record with state.
func (s *Store) Save(ctx context.Context, state model.PersistedState) error {
	blob, err := encodeState(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		SlotKey, blob)
	if err != nil {
		return err
	}
	s.log.Debug().Str("slot", SlotKey).Int("entries", len(state.Marks)).Msg("saved state")
	return nil
}

// Clear removes the persisted record entirely.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, SlotKey); err != nil {
		return err
	}
	s.log.Debug().Str("slot", SlotKey).Msg("cleared state")
	return nil
}

func (s *Store) readSlot(ctx context.Context) (string, bool, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, SlotKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return blob, true, nil
}
