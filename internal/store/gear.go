package store

import (
	"database/sql"
	"errors"
)

// ErrGearNotFound is returned when a piece of gear doesn't exist
var ErrGearNotFound = errors.New("gear not found")

// UpsertGear inserts or updates cached gear details
func (db *DB) UpsertGear(g *Gear) error {
	_, err := db.Exec(`
		INSERT INTO gear (id, name, brand_name, model_name, distance, retired, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			brand_name = excluded.brand_name,
			model_name = excluded.model_name,
			distance = excluded.distance,
			retired = excluded.retired,
			updated_at = CURRENT_TIMESTAMP
	`, g.ID, g.Name, g.BrandName, g.ModelName, g.Distance, boolToInt(g.Retired))
	return err
}

// GetGear retrieves cached gear details by ID
func (db *DB) GetGear(id string) (*Gear, error) {
	row := db.QueryRow(`
		SELECT id, name, brand_name, model_name, distance, retired
		FROM gear
		WHERE id = ?
	`, id)

	var g Gear
	var brand, model sql.NullString
	var retired int
	err := row.Scan(&g.ID, &g.Name, &brand, &model, &g.Distance, &retired)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGearNotFound
	}
	if err != nil {
		return nil, err
	}
	g.BrandName = brand.String
	g.ModelName = model.String
	g.Retired = retired == 1
	return &g, nil
}

// ListGear returns all cached gear ordered by name
func (db *DB) ListGear() ([]Gear, error) {
	rows, err := db.Query(`
		SELECT id, name, brand_name, model_name, distance, retired
		FROM gear
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gears []Gear
	for rows.Next() {
		var g Gear
		var brand, model sql.NullString
		var retired int
		if err := rows.Scan(&g.ID, &g.Name, &brand, &model, &g.Distance, &retired); err != nil {
			return nil, err
		}
		g.BrandName = brand.String
		g.ModelName = model.String
		g.Retired = retired == 1
		gears = append(gears, g)
	}
	return gears, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
