package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"gearwear/internal/gear"
	"gearwear/internal/store"
	"gearwear/internal/strava"
)

// SyncResult contains the results of a sync operation
type SyncResult struct {
	ActivitiesFetched int
	ActivitiesStored  int
	GearFetched       int
	ComponentsUpdated int
	Full              bool
	Errors            []error
}

// NeedsSync reports whether an automatic sync should run now. Syncs run at
// most once per calendar day and never closer together than the configured
// minimum interval, inside the configured night window, and only when
// Strava has an activity we haven't seen.
func (m *Monitor) NeedsSync(ctx context.Context) (bool, error) {
	lastSync, err := m.store.LastSyncTime()
	if err != nil {
		return false, err
	}
	if lastSync.IsZero() {
		return true, nil
	}

	now := m.now()
	y1, mo1, d1 := now.Date()
	y2, mo2, d2 := lastSync.Date()
	if y1 == y2 && mo1 == mo2 && d1 == d2 {
		return false, nil
	}
	if now.Sub(lastSync) < time.Duration(m.syncCfg.MinIntervalHours)*time.Hour {
		return false, nil
	}
	if !m.inNightWindow(now.Hour()) {
		return false, nil
	}

	latest, err := m.source.GetLatestActivity(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", gear.ErrSourceUnavailable, err)
	}
	if latest == nil {
		return false, nil
	}

	lastID, err := m.store.LastActivityID()
	if err != nil {
		return false, err
	}
	return strconv.FormatInt(latest.ID, 10) != lastID, nil
}

func (m *Monitor) inNightWindow(hour int) bool {
	start, end := m.syncCfg.NightWindowStartHour, m.syncCfg.NightWindowEndHour
	if start <= end {
		return hour >= start && hour < end
	}
	// Window wraps midnight, e.g. 20..6.
	return hour >= start || hour < end
}

// Sync pulls activities from Strava into the local cache, refreshes gear
// details and accrues distance on active components. With full set, the
// whole history is refetched; otherwise only activities after the newest
// cached one. The lower bound is an activity date, not the sync time, so
// a ride uploaded after an earlier sync ran is still fetched.
func (m *Monitor) Sync(ctx context.Context, full bool) (*SyncResult, error) {
	result := &SyncResult{Full: full}

	var after time.Time
	if !full {
		latest, err := m.store.LatestActivityDate()
		if err != nil {
			return result, err
		}
		if latest != "" {
			after, err = time.Parse(time.RFC3339, latest)
			if err != nil {
				return result, fmt.Errorf("parsing cached activity date %q: %w", latest, err)
			}
		}
	}

	m.log.WithFields(logrus.Fields{"full": full, "after": after}).Info("starting sync")

	activities, err := m.source.GetAllActivities(ctx, after, func(fetched int) {
		m.log.WithField("fetched", fetched).Debug("fetching activities")
	})
	if err != nil {
		return result, fmt.Errorf("%w: %v", gear.ErrSourceUnavailable, err)
	}
	result.ActivitiesFetched = len(activities)

	cached := make([]store.Activity, 0, len(activities))
	for _, a := range activities {
		cached = append(cached, store.Activity{
			ID:        a.ID,
			AthleteID: a.Athlete.ID,
			Name:      a.Name,
			SportType: a.SportType,
			GearID:    a.GearID,
			StartDate: a.StartDate,
			Distance:  a.Distance,
		})
	}
	if err := m.store.UpsertActivities(cached); err != nil {
		return result, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	result.ActivitiesStored = len(cached)

	if err := m.syncGearDetails(ctx, activities, result); err != nil {
		result.Errors = append(result.Errors, err)
	}
	if err := m.refreshComponentMileage(result); err != nil {
		result.Errors = append(result.Errors, err)
	}

	// Checkpoint is overwritten wholesale once everything landed.
	if err := m.store.SetLastSyncTime(m.now()); err != nil {
		return result, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	if len(activities) > 0 {
		newest := activities[0]
		for _, a := range activities[1:] {
			if a.StartDate > newest.StartDate {
				newest = a
			}
		}
		if err := m.store.SetLastActivityID(strconv.FormatInt(newest.ID, 10)); err != nil {
			return result, fmt.Errorf("%w: %v", gear.ErrPersistence, err)
		}
	}

	m.log.WithFields(logrus.Fields{
		"fetched": result.ActivitiesFetched,
		"gear":    result.GearFetched,
		"errors":  len(result.Errors),
	}).Info("sync finished")

	return result, nil
}

// syncGearDetails refreshes cached details for the athlete's bikes, shoes
// and any gear referenced by the fetched activities.
func (m *Monitor) syncGearDetails(ctx context.Context, activities []strava.Activity, result *SyncResult) error {
	ids := map[string]struct{}{}
	for _, a := range activities {
		if a.GearID != "" {
			ids[a.GearID] = struct{}{}
		}
	}

	athlete, err := m.source.GetAthlete(ctx)
	if err != nil {
		return fmt.Errorf("%w: fetching athlete: %v", gear.ErrSourceUnavailable, err)
	}
	for _, g := range append(athlete.Bikes, athlete.Shoes...) {
		ids[g.ID] = struct{}{}
	}

	for id := range ids {
		g, err := m.source.GetGear(ctx, id)
		if err != nil {
			m.log.WithError(err).WithField("gear_id", id).Warn("fetching gear details failed")
			continue
		}
		err = m.store.UpsertGear(&store.Gear{
			ID:        g.ID,
			Name:      g.Name,
			BrandName: g.BrandName,
			ModelName: g.ModelName,
			Distance:  g.Distance,
			Retired:   g.Retired,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", gear.ErrPersistence, err)
		}
		result.GearFetched++
	}
	return nil
}

// refreshComponentMileage restamps every active component's current
// mileage with its gear's cumulative cached distance. Mileage marks are
// gear-cumulative, so the stamp is a plain overwrite and reruns are
// harmless.
func (m *Monitor) refreshComponentMileage(result *SyncResult) error {
	active, err := m.store.ListComponents(gear.StatusActive, "")
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return nil
	}

	cached, err := m.store.ListActivities()
	if err != nil {
		return fmt.Errorf("%w: %v", gear.ErrPersistence, err)
	}
	activities := make([]gear.Activity, 0, len(cached))
	for _, a := range cached {
		activities = append(activities, a.Gear())
	}
	usage := gear.Aggregate(activities, nil)

	for _, c := range active {
		km := gear.DistanceKM(usage, c.GearID)
		if km == c.CurrentMileageKM {
			continue
		}
		if err := m.store.UpdateComponentMileage(c.ID, km); err != nil {
			return err
		}
		result.ComponentsUpdated++
	}
	return nil
}
