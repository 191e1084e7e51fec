package store

import (
	"database/sql"
	"errors"
)

// ErrActivityNotFound is returned when an activity doesn't exist
var ErrActivityNotFound = errors.New("activity not found")

// UpsertActivities inserts or updates a batch of cached activities in a
// single transaction.
func (db *DB) UpsertActivities(activities []Activity) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO activities (id, athlete_id, name, sport_type, gear_id, start_date, distance, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			name = excluded.name,
			sport_type = excluded.sport_type,
			gear_id = excluded.gear_id,
			start_date = excluded.start_date,
			distance = excluded.distance,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range activities {
		if _, err := stmt.Exec(a.ID, a.AthleteID, a.Name, a.SportType, a.GearID, a.StartDate, a.Distance); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetActivity retrieves a cached activity by ID
func (db *DB) GetActivity(id int64) (*Activity, error) {
	row := db.QueryRow(`
		SELECT id, athlete_id, name, sport_type, gear_id, start_date, distance
		FROM activities
		WHERE id = ?
	`, id)
	return scanActivity(row)
}

// ListActivities returns all cached activities ordered by start date
// ascending.
func (db *DB) ListActivities() ([]Activity, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, name, sport_type, gear_id, start_date, distance
		FROM activities
		ORDER BY start_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

// ListActivitiesByGear returns the cached activities for one piece of gear,
// ordered by start date ascending.
func (db *DB) ListActivitiesByGear(gearID string) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, name, sport_type, gear_id, start_date, distance
		FROM activities
		WHERE gear_id = ?
		ORDER BY start_date ASC
	`, gearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

// LatestActivityDate returns the newest cached start_date, or empty string
// when the cache is empty.
func (db *DB) LatestActivityDate() (string, error) {
	// MAX over an empty table yields NULL
	var date sql.NullString
	err := db.QueryRow(`SELECT MAX(start_date) FROM activities`).Scan(&date)
	if err != nil {
		return "", err
	}
	return date.String, nil
}

// CountActivities returns the number of cached activities
func (db *DB) CountActivities() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count)
	return count, err
}

// ClearActivities drops the whole activity cache
func (db *DB) ClearActivities() error {
	_, err := db.Exec(`DELETE FROM activities`)
	return err
}

type scannable interface {
	Scan(dest ...any) error
}

func scanActivity(row scannable) (*Activity, error) {
	var a Activity
	err := row.Scan(&a.ID, &a.AthleteID, &a.Name, &a.SportType, &a.GearID, &a.StartDate, &a.Distance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}
