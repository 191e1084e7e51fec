package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gearwear/internal/gear"
	"gearwear/internal/store"
)

// IntervalStatus pairs an interval with where the gear stands against it.
type IntervalStatus struct {
	Interval  *gear.ServiceInterval
	CurrentKM float64
	Due       bool
	Remaining float64 // km for distance intervals, days for time intervals
}

// AddServiceInterval creates a recurring schedule for an item on a piece
// of gear. The item must have at least one maintenance record; the
// interval anchors to the latest one and never moves afterwards.
func (m *Monitor) AddServiceInterval(gearID, item, typ string, value float64, action string) (*gear.ServiceInterval, error) {
	anchor, err := m.store.LatestMaintenanceOfType(gearID, item)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q on %s", gear.ErrNoMaintenanceHistory, gear.NormalizeType(item), gearID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}

	anchorKM, err := m.gearDistanceUpTo(gearID, anchor.Date)
	if err != nil {
		return nil, err
	}

	interval, err := gear.NewServiceInterval(uuid.NewString(), gearID, item, typ, value, action, anchor, anchorKM)
	if err != nil {
		return nil, err
	}
	if err := m.store.SaveServiceInterval(interval); err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}

	m.log.WithField("gear_id", gearID).WithField("item", interval.Item).
		WithField("type", typ).Info("service interval added")
	return interval, nil
}

// gearDistanceUpTo sums the gear's cached activity distance through the
// given instant, in kilometers.
func (m *Monitor) gearDistanceUpTo(gearID string, until time.Time) (float64, error) {
	cached, err := m.store.ListActivitiesByGear(gearID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	activities := make([]gear.Activity, 0, len(cached))
	for _, a := range cached {
		activities = append(activities, a.Gear())
	}

	var meters float64
	for _, a := range gear.Between(activities, nil, until) {
		meters += a.Distance
	}
	return meters / 1000, nil
}

// ListServiceIntervals returns intervals with their current due status. An
// empty gearID covers all gear.
func (m *Monitor) ListServiceIntervals(gearID string) ([]IntervalStatus, error) {
	intervals, err := m.store.ListServiceIntervals(gearID)
	if err != nil {
		return nil, err
	}
	if len(intervals) == 0 {
		return nil, nil
	}

	cached, err := m.store.ListActivities()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	activities := make([]gear.Activity, 0, len(cached))
	for _, a := range cached {
		activities = append(activities, a.Gear())
	}
	usage := gear.Aggregate(activities, nil)

	now := m.now()
	statuses := make([]IntervalStatus, 0, len(intervals))
	for _, s := range intervals {
		currentKM := gear.DistanceKM(usage, s.GearID)
		statuses = append(statuses, IntervalStatus{
			Interval:  s,
			CurrentKM: currentKM,
			Due:       s.Due(currentKM, now),
			Remaining: s.Remaining(currentKM, now),
		})
	}
	return statuses, nil
}

// DeleteServiceInterval removes an interval by its ID.
func (m *Monitor) DeleteServiceInterval(id string) error {
	return m.store.DeleteServiceInterval(id)
}
