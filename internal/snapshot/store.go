// Package snapshot persists the full application state as one versioned
// JSON blob in a fixed key-value slot.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/doc4437/pantri/internal/domain"
)

const (
	// SlotKey is the single storage slot holding the persisted state.
	SlotKey = "pantri:v1"

	// SchemaVersion tags every saved payload. Bump it together with a new
	// case in Migrate.
	SchemaVersion = 1
)

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewStore(database *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: database, logger: logger}
}

// Load returns the persisted application state. A missing or malformed
// snapshot resolves to the seed state; corruption is logged, never
// propagated.
func (s *Store) Load(ctx context.Context) domain.State {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM snapshots WHERE key = ?
	`, SlotKey).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return Seed()
	}
	if err != nil {
		s.logger.Error("failed to read snapshot, falling back to seed", "error", err)
		return Seed()
	}

	persisted, err := Decode(payload)
	if err != nil {
		s.logger.Error("malformed snapshot, falling back to seed", "error", err)
		return Seed()
	}

	return Migrate(persisted)
}

// Save overwrites the slot with state tagged with the current schema
// version. Safe to call arbitrarily often.
func (s *Store) Save(ctx context.Context, state domain.State) error {
	payload, err := Encode(state)
	if err != nil {
		return &domain.PersistenceError{Op: "save", Cause: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = datetime('now')
	`, SlotKey, payload)
	if err != nil {
		return &domain.PersistenceError{Op: "save", Cause: err}
	}

	return nil
}

// Clear removes the stored snapshot; the next Load returns the seed state.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, SlotKey)
	if err != nil {
		return &domain.PersistenceError{Op: "clear", Cause: err}
	}
	return nil
}
