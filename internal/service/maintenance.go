package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gearwear/internal/gear"
	"gearwear/internal/store"
)

// RecordMaintenance logs maintenance work on a piece of gear. The record
// snapshots the gear's activities between the previous record of the same
// type and now; the first record of a type covers the gear's whole cached
// history.
func (m *Monitor) RecordMaintenance(gearID, typ, notes string) (*gear.MaintenanceRecord, error) {
	typ = gear.NormalizeType(typ)
	if typ == "" {
		return nil, fmt.Errorf("maintenance type must not be empty")
	}

	cached, err := m.store.ListActivitiesByGear(gearID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	activities := make([]gear.Activity, 0, len(cached))
	for _, a := range cached {
		activities = append(activities, a.Gear())
	}

	now := m.now()
	var prevDate *gear.MaintenanceRecord
	prev, err := m.store.LatestMaintenanceOfType(gearID, typ)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		// First record of this type, no lower bound.
	case err != nil:
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	default:
		prevDate = prev
	}

	var window []gear.Activity
	if prevDate != nil {
		window = gear.SinceLast(activities, &prevDate.Date, now)
	} else {
		window = gear.SinceLast(activities, nil, now)
	}

	record := &gear.MaintenanceRecord{
		ID:     uuid.NewString(),
		GearID: gearID,
		Type:   typ,
		Date:   now,
		Notes:  notes,
	}
	for _, a := range window {
		record.Activities = append(record.Activities, a.Stub())
	}

	if err := m.store.SaveMaintenanceRecord(record); err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}

	m.log.WithField("gear_id", gearID).WithField("type", typ).
		WithField("activities", len(record.Activities)).Info("maintenance recorded")
	return record, nil
}

// ListMaintenance returns maintenance records sorted ascending by date.
// An empty gearID or typ leaves that filter off.
func (m *Monitor) ListMaintenance(gearID, typ string) ([]*gear.MaintenanceRecord, error) {
	return m.store.ListMaintenanceRecords(gearID, typ)
}

// DeleteMaintenance removes a record by its ID. The snapshot goes with it;
// service intervals anchored to it keep their copied anchor values.
func (m *Monitor) DeleteMaintenance(id string) error {
	return m.store.DeleteMaintenanceRecord(id)
}
