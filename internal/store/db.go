package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection and provides the record store.
type DB struct {
	*sql.DB
}

// Open opens the SQLite database, creating it if necessary. The database
// lives in the XDG data directory (gearwear/data.db).
func Open() (*DB, error) {
	dbPath, err := xdg.DataFile(filepath.Join("gearwear", "data.db"))
	if err != nil {
		return nil, fmt.Errorf("resolving data path: %w", err)
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at an explicit path. ":memory:" works for
// tests.
func OpenPath(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &DB{db}, nil
}
