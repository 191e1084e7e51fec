package store

import (
	"database/sql"
	"errors"
	"time"
)

const (
	syncKeyLastSync       = "last_sync"
	syncKeyLastActivityID = "last_activity_id"
)

// GetSyncState retrieves a sync state value by key
// Returns empty string if key doesn't exist
func (db *DB) GetSyncState(key string) (string, error) {
	var value string
	err := db.QueryRow(`
		SELECT value FROM sync_state WHERE key = ?
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSyncState sets a sync state value
func (db *DB) SetSyncState(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// LastSyncTime returns the last successful sync checkpoint, or the zero
// time when no sync has ever completed.
func (db *DB) LastSyncTime() (time.Time, error) {
	value, err := db.GetSyncState(syncKeyLastSync)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

// SetLastSyncTime overwrites the sync checkpoint wholesale.
func (db *DB) SetLastSyncTime(t time.Time) error {
	return db.SetSyncState(syncKeyLastSync, formatTime(t))
}

// LastActivityID returns the newest activity ID seen during sync, empty
// when unknown.
func (db *DB) LastActivityID() (string, error) {
	return db.GetSyncState(syncKeyLastActivityID)
}

func (db *DB) SetLastActivityID(id string) error {
	return db.SetSyncState(syncKeyLastActivityID, id)
}

// ClearSyncState drops all checkpoints, forcing the next sync to walk the
// full history.
func (db *DB) ClearSyncState() error {
	_, err := db.Exec(`DELETE FROM sync_state`)
	return err
}
