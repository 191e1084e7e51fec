package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			athlete_name TEXT NOT NULL DEFAULT '',
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			scope TEXT NOT NULL DEFAULT '',
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Cached activity summaries from /athlete/activities. start_date is
		// kept verbatim so upstream oddities survive the round trip.
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			sport_type TEXT NOT NULL,
			gear_id TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL,
			distance REAL NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_gear ON activities(gear_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_start_date ON activities(start_date)`,

		// Gear details from /gear/{id}
		`CREATE TABLE IF NOT EXISTS gear (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			brand_name TEXT,
			model_name TEXT,
			distance REAL NOT NULL DEFAULT 0,
			retired INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Maintenance records with an immutable snapshot of the activities
		// they covered
		`CREATE TABLE IF NOT EXISTS maintenance_records (
			id TEXT PRIMARY KEY,
			gear_id TEXT NOT NULL,
			type TEXT NOT NULL,
			date TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS maintenance_activities (
			record_id TEXT NOT NULL REFERENCES maintenance_records(id) ON DELETE CASCADE,
			activity_id INTEGER NOT NULL,
			start_date TEXT NOT NULL,
			distance REAL NOT NULL,
			PRIMARY KEY (record_id, activity_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_maintenance_gear_type ON maintenance_records(gear_id, type)`,

		// Service intervals, anchored at creation time
		`CREATE TABLE IF NOT EXISTS service_intervals (
			id TEXT PRIMARY KEY,
			gear_id TEXT NOT NULL,
			item TEXT NOT NULL,
			interval_type TEXT NOT NULL CHECK (interval_type IN ('time', 'distance')),
			interval_value REAL NOT NULL CHECK (interval_value > 0),
			action TEXT NOT NULL DEFAULT '',
			anchor_date TEXT NOT NULL,
			anchor_km REAL NOT NULL
		)`,

		// Components tracked across installs, removals and retirement
		`CREATE TABLE IF NOT EXISTS components (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			gear_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK (status IN ('active', 'in_inventory', 'retired')),
			purchase_date TEXT,
			purchase_price REAL NOT NULL DEFAULT 0,
			installed_at TEXT,
			retired_at TEXT,
			mileage_at_install_km REAL NOT NULL DEFAULT 0,
			current_mileage_km REAL NOT NULL DEFAULT 0
		)`,

		// Append-only swap log
		`CREATE TABLE IF NOT EXISTS component_swaps (
			id TEXT PRIMARY KEY,
			component_id TEXT NOT NULL REFERENCES components(id),
			old_component_id TEXT NOT NULL DEFAULT '',
			gear_id TEXT NOT NULL,
			action TEXT NOT NULL,
			date TEXT NOT NULL,
			mileage_km REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_swaps_component ON component_swaps(component_id)`,

		// Sync checkpoints
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}
