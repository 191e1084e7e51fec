package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearwear/internal/gear"
)

// ErrComponentNotFound is returned when a component doesn't exist
var ErrComponentNotFound = errors.New("component not found")

// SaveComponent inserts or updates a component
func (db *DB) SaveComponent(c *gear.Component) error {
	_, err := db.Exec(`
		INSERT INTO components (id, name, brand, model, notes, gear_id, status,
			purchase_date, purchase_price, installed_at, retired_at,
			mileage_at_install_km, current_mileage_km)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			model = excluded.model,
			notes = excluded.notes,
			gear_id = excluded.gear_id,
			status = excluded.status,
			purchase_date = excluded.purchase_date,
			purchase_price = excluded.purchase_price,
			installed_at = excluded.installed_at,
			retired_at = excluded.retired_at,
			mileage_at_install_km = excluded.mileage_at_install_km,
			current_mileage_km = excluded.current_mileage_km
	`, c.ID, c.Name, c.Brand, c.Model, c.Notes, c.GearID, c.Status,
		formatTimePtr(c.PurchaseDate), c.PurchasePrice,
		formatTimePtr(c.InstalledAt), formatTimePtr(c.RetiredAt),
		c.MileageAtInstallKM, c.CurrentMileageKM)
	return err
}

const componentColumns = `id, name, brand, model, notes, gear_id, status,
	purchase_date, purchase_price, installed_at, retired_at,
	mileage_at_install_km, current_mileage_km`

// GetComponent retrieves a component by ID
func (db *DB) GetComponent(id string) (*gear.Component, error) {
	row := db.QueryRow(`
		SELECT `+componentColumns+`
		FROM components
		WHERE id = ?
	`, id)
	return scanComponent(row)
}

// ListComponents returns components, optionally filtered by status and/or
// gear. Empty filters match everything.
func (db *DB) ListComponents(status, gearID string) ([]*gear.Component, error) {
	query := `
		SELECT ` + componentColumns + `
		FROM components
		WHERE 1 = 1`
	var args []any
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if gearID != "" {
		query += ` AND gear_id = ?`
		args = append(args, gearID)
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []*gear.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// UpdateComponentMileage sets a component's current mileage stamp
func (db *DB) UpdateComponentMileage(id string, km float64) error {
	result, err := db.Exec(`
		UPDATE components SET current_mileage_km = ? WHERE id = ?
	`, km, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrComponentNotFound
	}
	return nil
}

// ApplyComponentSwap persists the component states and swap log entries of
// one swap in a single transaction. Either everything lands or nothing
// does.
func (db *DB) ApplyComponentSwap(components []*gear.Component, swaps []*gear.ComponentSwap) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range components {
		_, err := tx.Exec(`
			UPDATE components
			SET gear_id = ?, status = ?, installed_at = ?, retired_at = ?,
				mileage_at_install_km = ?, current_mileage_km = ?
			WHERE id = ?
		`, c.GearID, c.Status, formatTimePtr(c.InstalledAt), formatTimePtr(c.RetiredAt),
			c.MileageAtInstallKM, c.CurrentMileageKM, c.ID)
		if err != nil {
			return err
		}
	}
	for _, s := range swaps {
		_, err := tx.Exec(`
			INSERT INTO component_swaps (id, component_id, old_component_id, gear_id, action, date, mileage_km)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.ID, s.ComponentID, s.OldComponentID, s.GearID, s.Action, formatTime(s.Date), s.MileageKM)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListComponentSwaps returns the swap log for a component, oldest first.
// An empty componentID returns the whole log.
func (db *DB) ListComponentSwaps(componentID string) ([]*gear.ComponentSwap, error) {
	query := `
		SELECT id, component_id, old_component_id, gear_id, action, date, mileage_km
		FROM component_swaps
		ORDER BY date ASC`
	var args []any
	if componentID != "" {
		query = `
		SELECT id, component_id, old_component_id, gear_id, action, date, mileage_km
		FROM component_swaps
		WHERE component_id = ?
		ORDER BY date ASC`
		args = append(args, componentID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var swaps []*gear.ComponentSwap
	for rows.Next() {
		var s gear.ComponentSwap
		var date string
		if err := rows.Scan(&s.ID, &s.ComponentID, &s.OldComponentID, &s.GearID, &s.Action, &date, &s.MileageKM); err != nil {
			return nil, err
		}
		s.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("parsing swap date %q: %w", date, err)
		}
		swaps = append(swaps, &s)
	}
	return swaps, rows.Err()
}

func scanComponent(row scannable) (*gear.Component, error) {
	var c gear.Component
	var purchaseDate, installedAt, retiredAt sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Brand, &c.Model, &c.Notes, &c.GearID, &c.Status,
		&purchaseDate, &c.PurchasePrice, &installedAt, &retiredAt,
		&c.MileageAtInstallKM, &c.CurrentMileageKM)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrComponentNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.PurchaseDate, err = parseTimePtr(purchaseDate); err != nil {
		return nil, err
	}
	if c.InstalledAt, err = parseTimePtr(installedAt); err != nil {
		return nil, err
	}
	if c.RetiredAt, err = parseTimePtr(retiredAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// formatTime stores instants in UTC so the TEXT columns order
// chronologically under lexicographic comparison.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing time %q: %w", s.String, err)
	}
	return &t, nil
}

// ClearComponents drops all components and their swap log. Swaps go first
// so the FK holds mid-transaction.
func (db *DB) ClearComponents() error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM component_swaps`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM components`); err != nil {
		return err
	}
	return tx.Commit()
}
