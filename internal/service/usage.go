package service

import (
	"fmt"
	"sort"

	"gearwear/internal/gear"
	"gearwear/internal/store"
)

// GearReport combines cached Strava gear details with locally derived
// usage and maintenance history.
type GearReport struct {
	Gear  store.Gear
	Usage *gear.Usage
}

// Usage folds the cached activity history into per-gear usage, with each
// gear's maintenance history attached.
func (m *Monitor) Usage() (map[string]*gear.Usage, error) {
	cached, err := m.store.ListActivities()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	activities := make([]gear.Activity, 0, len(cached))
	for _, a := range cached {
		activities = append(activities, a.Gear())
	}

	history, err := m.store.MaintenanceByGear()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}

	return gear.Aggregate(activities, history), nil
}

// GearReports returns one report per known piece of gear, sorted by name.
// Gear that appears in activities but has no cached details still gets a
// report with its ID as the name.
func (m *Monitor) GearReports() ([]GearReport, error) {
	usage, err := m.Usage()
	if err != nil {
		return nil, err
	}

	known, err := m.store.ListGear()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	byID := map[string]store.Gear{}
	for _, g := range known {
		byID[g.ID] = g
	}

	var reports []GearReport
	seen := map[string]bool{}
	for _, g := range known {
		reports = append(reports, GearReport{Gear: g, Usage: usage[g.ID]})
		seen[g.ID] = true
	}
	for id, u := range usage {
		if seen[id] {
			continue
		}
		reports = append(reports, GearReport{
			Gear:  store.Gear{ID: id, Name: id},
			Usage: u,
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Gear.Name < reports[j].Gear.Name
	})
	return reports, nil
}
