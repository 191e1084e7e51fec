package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearwear/internal/gear"
)

// ErrIntervalNotFound is returned when a service interval doesn't exist
var ErrIntervalNotFound = errors.New("service interval not found")

// SaveServiceInterval stores a new interval
func (db *DB) SaveServiceInterval(s *gear.ServiceInterval) error {
	_, err := db.Exec(`
		INSERT INTO service_intervals (id, gear_id, item, interval_type, interval_value, action, anchor_date, anchor_km)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.GearID, s.Item, s.Type, s.Value, s.Action, formatTime(s.AnchorDate), s.AnchorKM)
	return err
}

// ListServiceIntervals returns intervals for one piece of gear. An empty
// gearID returns everything.
func (db *DB) ListServiceIntervals(gearID string) ([]*gear.ServiceInterval, error) {
	query := `
		SELECT id, gear_id, item, interval_type, interval_value, action, anchor_date, anchor_km
		FROM service_intervals
		ORDER BY gear_id, item`
	args := []any{}
	if gearID != "" {
		query = `
		SELECT id, gear_id, item, interval_type, interval_value, action, anchor_date, anchor_km
		FROM service_intervals
		WHERE gear_id = ?
		ORDER BY item`
		args = append(args, gearID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []*gear.ServiceInterval
	for rows.Next() {
		s, err := scanServiceInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, s)
	}
	return intervals, rows.Err()
}

// DeleteServiceInterval removes an interval by ID
func (db *DB) DeleteServiceInterval(id string) error {
	result, err := db.Exec(`DELETE FROM service_intervals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrIntervalNotFound
	}
	return nil
}

// ClearServiceIntervals drops all intervals
func (db *DB) ClearServiceIntervals() error {
	_, err := db.Exec(`DELETE FROM service_intervals`)
	return err
}

func scanServiceInterval(row scannable) (*gear.ServiceInterval, error) {
	var s gear.ServiceInterval
	var anchorDate string
	err := row.Scan(&s.ID, &s.GearID, &s.Item, &s.Type, &s.Value, &s.Action, &anchorDate, &s.AnchorKM)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIntervalNotFound
	}
	if err != nil {
		return nil, err
	}
	s.AnchorDate, err = time.Parse(time.RFC3339, anchorDate)
	if err != nil {
		return nil, fmt.Errorf("parsing anchor date %q: %w", anchorDate, err)
	}
	return &s, nil
}
