package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearwear/internal/gear"
)

// ErrRecordNotFound is returned when a maintenance record doesn't exist
var ErrRecordNotFound = errors.New("maintenance record not found")

// SaveMaintenanceRecord stores a record and its activity snapshot in one
// transaction.
func (db *DB) SaveMaintenanceRecord(r *gear.MaintenanceRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO maintenance_records (id, gear_id, type, date, notes)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.GearID, gear.NormalizeType(r.Type), formatTime(r.Date), r.Notes)
	if err != nil {
		return err
	}

	for _, a := range r.Activities {
		_, err = tx.Exec(`
			INSERT INTO maintenance_activities (record_id, activity_id, start_date, distance)
			VALUES (?, ?, ?, ?)
		`, r.ID, a.ID, a.StartDate, a.Distance)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetMaintenanceRecord retrieves a single record with its snapshot
func (db *DB) GetMaintenanceRecord(id string) (*gear.MaintenanceRecord, error) {
	row := db.QueryRow(`
		SELECT id, gear_id, type, date, notes
		FROM maintenance_records
		WHERE id = ?
	`, id)

	r, err := scanMaintenanceRecord(row)
	if err != nil {
		return nil, err
	}
	if err := db.loadSnapshots(map[string]*gear.MaintenanceRecord{r.ID: r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListMaintenanceRecords returns records sorted ascending by date, with
// their activity snapshots. An empty gearID or typ leaves that filter off.
func (db *DB) ListMaintenanceRecords(gearID, typ string) ([]*gear.MaintenanceRecord, error) {
	query := `
		SELECT id, gear_id, type, date, notes
		FROM maintenance_records
		WHERE 1 = 1`
	var args []any
	if gearID != "" {
		query += ` AND gear_id = ?`
		args = append(args, gearID)
	}
	if typ != "" {
		query += ` AND type = ?`
		args = append(args, gear.NormalizeType(typ))
	}
	query += ` ORDER BY date ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*gear.MaintenanceRecord
	byID := map[string]*gear.MaintenanceRecord{}
	for rows.Next() {
		r, err := scanMaintenanceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := db.loadSnapshots(byID); err != nil {
		return nil, err
	}
	return records, nil
}

// MaintenanceByGear returns all records grouped by gear ID, for usage
// aggregation.
func (db *DB) MaintenanceByGear() (map[string][]*gear.MaintenanceRecord, error) {
	records, err := db.ListMaintenanceRecords("", "")
	if err != nil {
		return nil, err
	}
	byGear := map[string][]*gear.MaintenanceRecord{}
	for _, r := range records {
		byGear[r.GearID] = append(byGear[r.GearID], r)
	}
	return byGear, nil
}

// LatestMaintenanceOfType returns the newest record of a given type for a
// piece of gear, or ErrRecordNotFound.
func (db *DB) LatestMaintenanceOfType(gearID, typ string) (*gear.MaintenanceRecord, error) {
	row := db.QueryRow(`
		SELECT id, gear_id, type, date, notes
		FROM maintenance_records
		WHERE gear_id = ? AND type = ?
		ORDER BY date DESC
		LIMIT 1
	`, gearID, gear.NormalizeType(typ))

	r, err := scanMaintenanceRecord(row)
	if err != nil {
		return nil, err
	}
	if err := db.loadSnapshots(map[string]*gear.MaintenanceRecord{r.ID: r}); err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteMaintenanceRecord removes a record by ID. The snapshot rows go with
// it via the cascade.
func (db *DB) DeleteMaintenanceRecord(id string) error {
	result, err := db.Exec(`DELETE FROM maintenance_records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ClearMaintenance drops every maintenance record and snapshot
func (db *DB) ClearMaintenance() error {
	_, err := db.Exec(`DELETE FROM maintenance_records`)
	return err
}

// loadSnapshots attaches activity stubs to the given records in one query.
func (db *DB) loadSnapshots(byID map[string]*gear.MaintenanceRecord) error {
	if len(byID) == 0 {
		return nil
	}
	rows, err := db.Query(`
		SELECT record_id, activity_id, start_date, distance
		FROM maintenance_activities
		ORDER BY start_date ASC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var recordID string
		var stub gear.ActivityStub
		if err := rows.Scan(&recordID, &stub.ID, &stub.StartDate, &stub.Distance); err != nil {
			return err
		}
		if r, ok := byID[recordID]; ok {
			r.Activities = append(r.Activities, stub)
		}
	}
	return rows.Err()
}

func scanMaintenanceRecord(row scannable) (*gear.MaintenanceRecord, error) {
	var r gear.MaintenanceRecord
	var date string
	err := row.Scan(&r.ID, &r.GearID, &r.Type, &date, &r.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Date, err = time.Parse(time.RFC3339, date)
	if err != nil {
		return nil, fmt.Errorf("parsing record date %q: %w", date, err)
	}
	return &r, nil
}
