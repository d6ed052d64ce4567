// Package prefs is the key-value persistence layer scoped to one catalog
// instance. It stores the selected match options, the exemption set, and the
// opaque "don't show again" confirmation flags in a prefs table inside the
// catalog database, namespaced the way the host keeps per-plugin settings.
//
// Writes take a file lock next to the database so two bookdup processes on
// the same host cannot interleave a read-modify-write cycle. Simultaneous
// writers on different machines are not supported; the last write wins.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Namespace scopes every bookdup preference in the shared prefs table.
const Namespace = "bookdup"

// ErrNotFound indicates the requested key has no stored value.
var ErrNotFound = errors.New("preference not found")

// Store reads and writes namespaced preference values.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
}

// New wraps a prefs store around the catalog database connection. lockPath
// names the lock file guarding writes; it lives next to the database.
func New(db *sql.DB, lockPath string) *Store {
	return &Store{db: db, lock: flock.New(lockPath)}
}

// Get unmarshals the stored JSON value for key into dst. Returns ErrNotFound
// when the key has never been written.
func (s *Store) Get(ctx context.Context, key string, dst any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM prefs WHERE namespace = ? AND key = ?`, Namespace, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read preference %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode preference %q: %w", key, err)
	}
	return nil
}

// Set stores value under key as JSON, replacing any previous value. The
// write is guarded by the store's file lock.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode preference %q: %w", key, err)
	}

	locked, err := s.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire prefs lock: %w", err)
	}
	if !locked {
		return errors.New("prefs lock unavailable")
	}
	defer func() { _ = s.lock.Unlock() }()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO prefs (namespace, key, value) VALUES (?, ?, ?)
         ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
		Namespace, key, string(data),
	)
	if err != nil {
		return fmt.Errorf("write preference %q: %w", key, err)
	}
	return nil
}

// Delete removes a stored key. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM prefs WHERE namespace = ? AND key = ?`, Namespace, key)
	if err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys with the given prefix, sorted.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM prefs WHERE namespace = ? ORDER BY key`, Namespace)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, rows.Err()
}

// confirmFlagPrefix namespaces the opaque "don't show again" booleans the
// CLI records for confirmation prompts. The core never interprets them.
const confirmFlagPrefix = "confirm."

// ConfirmAgain reports whether the named confirmation prompt should still be
// shown. Unset flags default to true.
func (s *Store) ConfirmAgain(ctx context.Context, name string) bool {
	var again bool
	if err := s.Get(ctx, confirmFlagPrefix+name, &again); err != nil {
		return true
	}
	return again
}

// SetConfirmAgain records whether the named confirmation prompt should be
// shown on future runs.
func (s *Store) SetConfirmAgain(ctx context.Context, name string, again bool) error {
	return s.Set(ctx, confirmFlagPrefix+name, again)
}

// ResetConfirmations re-enables every suppressed confirmation prompt and
// returns how many were reset.
func (s *Store) ResetConfirmations(ctx context.Context) (int, error) {
	keys, err := s.Keys(ctx, confirmFlagPrefix)
	if err != nil {
		return 0, err
	}
	reset := 0
	for _, key := range keys {
		var again bool
		if err := s.Get(ctx, key, &again); err != nil || again {
			continue
		}
		if err := s.Set(ctx, key, true); err != nil {
			return reset, err
		}
		reset++
	}
	return reset, nil
}
