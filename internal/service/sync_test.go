package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearwear/internal/gear"
	"gearwear/internal/strava"
)

func stravaRides() []strava.Activity {
	return []strava.Activity{
		{ID: 1, Athlete: strava.Athlete{ID: 7}, Name: "Morning Ride", SportType: "Ride", GearID: "b1", StartDate: "2024-03-01T08:00:00Z", Distance: 10000},
		{ID: 2, Athlete: strava.Athlete{ID: 7}, Name: "Commute", SportType: "Ride", GearID: "b1", StartDate: "2024-03-03T08:00:00Z", Distance: 20000},
		{ID: 3, Athlete: strava.Athlete{ID: 7}, Name: "Gravel", SportType: "GravelRide", GearID: "b1", StartDate: "2024-03-05T08:00:00Z", Distance: 5000},
	}
}

func testSource() *fakeSource {
	return &fakeSource{
		activities: stravaRides(),
		athlete: strava.Athlete{
			ID:    7,
			Bikes: []strava.Gear{{ID: "b1", Name: "Gravel Bike"}},
		},
		gears: map[string]strava.Gear{
			"b1": {ID: "b1", Name: "Gravel Bike", BrandName: "Canyon", ModelName: "Grizl", Distance: 35000},
		},
	}
}

func TestSyncStoresActivitiesAndGear(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	m.now = func() time.Time { return at(6, 2) }

	result, err := m.Sync(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if result.ActivitiesStored != 3 {
		t.Errorf("stored = %d, want 3", result.ActivitiesStored)
	}
	if result.GearFetched != 1 {
		t.Errorf("gear fetched = %d, want 1", result.GearFetched)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors: %v", result.Errors)
	}

	g, err := m.store.GetGear("b1")
	if err != nil {
		t.Fatal(err)
	}
	if g.BrandName != "Canyon" {
		t.Errorf("gear = %+v", g)
	}

	ts, err := m.store.LastSyncTime()
	if err != nil {
		t.Fatal(err)
	}
	if !ts.Equal(at(6, 2)) {
		t.Errorf("checkpoint = %v", ts)
	}
	id, err := m.store.LastActivityID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "3" {
		t.Errorf("last activity id = %q, want 3", id)
	}
}

func TestSyncIncremental(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	m.now = func() time.Time { return at(6, 2) }

	if _, err := m.Sync(context.Background(), false); err != nil {
		t.Fatal(err)
	}

	// A new ride shows up; the next incremental sync fetches only it.
	src.activities = append(src.activities, strava.Activity{
		ID: 4, Athlete: strava.Athlete{ID: 7}, Name: "Evening Ride",
		SportType: "Ride", GearID: "b1", StartDate: "2024-03-08T08:00:00Z", Distance: 15000,
	})
	m.now = func() time.Time { return at(9, 2) }

	result, err := m.Sync(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if result.ActivitiesFetched != 1 {
		t.Errorf("fetched = %d, want 1", result.ActivitiesFetched)
	}

	count, err := m.store.CountActivities()
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("cache = %d activities, want 4", count)
	}
}

func TestSyncSourceFailureLeavesStateAlone(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	m.now = func() time.Time { return at(6, 2) }

	src.err = errors.New("api down")
	if _, err := m.Sync(context.Background(), true); !errors.Is(err, gear.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}

	count, err := m.store.CountActivities()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("cache mutated on failed sync: %d", count)
	}
	ts, err := m.store.LastSyncTime()
	if err != nil {
		t.Fatal(err)
	}
	if !ts.IsZero() {
		t.Errorf("checkpoint written on failed sync: %v", ts)
	}
}

func TestSyncRefreshesComponentMileage(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	m.now = func() time.Time { return at(1, 0) }

	c, err := m.InstallComponent("b1", "chain", "SRAM", "XX1", "")
	if err != nil {
		t.Fatal(err)
	}
	if c.MileageAtInstallKM != 0 {
		t.Fatalf("install mark = %v, want 0 with an empty cache", c.MileageAtInstallKM)
	}

	m.now = func() time.Time { return at(6, 2) }
	result, err := m.Sync(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if result.ComponentsUpdated != 1 {
		t.Errorf("components updated = %d, want 1", result.ComponentsUpdated)
	}

	got, err := m.store.GetComponent(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentMileageKM != 35 || got.WearKM() != 35 {
		t.Errorf("mileage = %v (wear %v), want 35 (wear 35)", got.CurrentMileageKM, got.WearKM())
	}
}

func TestNeedsSync(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	ctx := context.Background()

	// Never synced: always.
	m.now = func() time.Time { return at(6, 14) }
	need, err := m.NeedsSync(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !need {
		t.Error("fresh store must need a sync")
	}

	m.now = func() time.Time { return at(6, 2) }
	if _, err := m.Sync(ctx, true); err != nil {
		t.Fatal(err)
	}

	// Same day: never again.
	m.now = func() time.Time { return at(6, 23) }
	if need, err = m.NeedsSync(ctx); err != nil || need {
		t.Errorf("same day: need = %v, err = %v", need, err)
	}

	// Next day but outside the night window.
	m.now = func() time.Time { return at(7, 14) }
	if need, err = m.NeedsSync(ctx); err != nil || need {
		t.Errorf("daytime: need = %v, err = %v", need, err)
	}

	// Night window, but nothing new upstream.
	m.now = func() time.Time { return at(7, 23) }
	if need, err = m.NeedsSync(ctx); err != nil || need {
		t.Errorf("no new activities: need = %v, err = %v", need, err)
	}

	// Night window with a fresh activity.
	src.activities = append(src.activities, strava.Activity{
		ID: 4, SportType: "Ride", GearID: "b1", StartDate: "2024-03-07T08:00:00Z", Distance: 15000,
	})
	if need, err = m.NeedsSync(ctx); err != nil || !need {
		t.Errorf("new activity at night: need = %v, err = %v", need, err)
	}

	// Early-morning side of the wrapped window.
	m.now = func() time.Time { return at(7, 5) }
	if need, err = m.NeedsSync(ctx); err != nil || !need {
		t.Errorf("early morning: need = %v, err = %v", need, err)
	}
}

func TestNeedsSyncHonorsMinInterval(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	ctx := context.Background()

	m.now = func() time.Time { return at(6, 22) }
	if _, err := m.Sync(ctx, true); err != nil {
		t.Fatal(err)
	}
	src.activities = append(src.activities, strava.Activity{
		ID: 4, SportType: "Ride", GearID: "b1", StartDate: "2024-03-07T08:00:00Z", Distance: 15000,
	})

	// Next calendar day and inside the night window, but only a few hours
	// after the last sync.
	m.now = func() time.Time { return at(7, 5) }
	if need, err := m.NeedsSync(ctx); err != nil || need {
		t.Errorf("too soon: need = %v, err = %v", need, err)
	}

	// A full day later clears the minimum interval.
	m.now = func() time.Time { return at(7, 22) }
	if need, err := m.NeedsSync(ctx); err != nil || !need {
		t.Errorf("after min interval: need = %v, err = %v", need, err)
	}
}

func TestSyncIncrementalFetchesLateUploads(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	m.now = func() time.Time { return at(6, 2) }

	if _, err := m.Sync(context.Background(), false); err != nil {
		t.Fatal(err)
	}

	// A ride ridden before that sync but uploaded afterwards. It predates
	// the checkpoint, not the newest cached activity, so the next
	// incremental sync still picks it up.
	src.activities = append(src.activities, strava.Activity{
		ID: 4, Athlete: strava.Athlete{ID: 7}, Name: "Late Upload",
		SportType: "Ride", GearID: "b1", StartDate: "2024-03-05T18:00:00Z", Distance: 15000,
	})
	m.now = func() time.Time { return at(9, 2) }

	result, err := m.Sync(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if result.ActivitiesFetched != 1 {
		t.Errorf("fetched = %d, want the late upload", result.ActivitiesFetched)
	}
	count, err := m.store.CountActivities()
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("cache = %d activities, want 4", count)
	}
}

func TestUsageAndReports(t *testing.T) {
	src := testSource()
	m := newTestMonitor(t, src)
	m.now = func() time.Time { return at(6, 2) }

	if _, err := m.Sync(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	if _, err := m.RecordMaintenance("b1", "wash", ""); err != nil {
		t.Fatal(err)
	}

	usage, err := m.Usage()
	if err != nil {
		t.Fatal(err)
	}
	u := usage["b1"]
	if u == nil || u.TotalDistanceKM != 35 {
		t.Fatalf("usage = %+v", u)
	}
	if len(u.Maintenance) != 1 {
		t.Errorf("maintenance history not attached: %d", len(u.Maintenance))
	}

	reports, err := m.GearReports()
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if reports[0].Gear.Name != "Gravel Bike" || reports[0].Usage.Activities != 3 {
		t.Errorf("report = %+v", reports[0])
	}
}
