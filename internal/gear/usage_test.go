package gear

import (
	"math/rand"
	"testing"
	"time"
)

func testActivities() []Activity {
	return []Activity{
		{ID: 1, GearID: "b123", SportType: "Ride", Distance: 10000, StartDate: "2024-03-01T08:00:00Z"},
		{ID: 2, GearID: "b123", SportType: "Ride", Distance: 20000, StartDate: "2024-03-03T08:00:00Z"},
		{ID: 3, GearID: "b123", SportType: "GravelRide", Distance: 5000, StartDate: "2024-03-05T08:00:00Z"},
		{ID: 4, GearID: "b999", SportType: "Ride", Distance: 40000, StartDate: "2024-03-02T08:00:00Z"},
		{ID: 5, GearID: "", SportType: "Run", Distance: 8000, StartDate: "2024-03-04T08:00:00Z"},
	}
}

func TestAggregate(t *testing.T) {
	usage := Aggregate(testActivities(), nil)

	u, ok := usage["b123"]
	if !ok {
		t.Fatal("expected usage for b123")
	}
	if u.Activities != 3 {
		t.Errorf("activities = %d, want 3", u.Activities)
	}
	if u.TotalDistanceM != 35000 {
		t.Errorf("total meters = %v, want 35000", u.TotalDistanceM)
	}
	if u.TotalDistanceKM != 35 {
		t.Errorf("total km = %v, want 35", u.TotalDistanceKM)
	}
	if _, ok := u.SportTypes["GravelRide"]; !ok {
		t.Error("expected GravelRide in sport types")
	}
	if got := u.FirstActivity.Format("2006-01-02"); got != "2024-03-01" {
		t.Errorf("first activity = %s, want 2024-03-01", got)
	}
	if got := u.LastActivity.Format("2006-01-02"); got != "2024-03-05" {
		t.Errorf("last activity = %s, want 2024-03-05", got)
	}
	if _, ok := usage[""]; ok {
		t.Error("activities without gear must not produce a usage entry")
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	base := Aggregate(testActivities(), nil)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := testActivities()
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Aggregate(shuffled, nil)
		for id, want := range base {
			u := got[id]
			if u == nil {
				t.Fatalf("shuffle %d: missing usage for %s", i, id)
			}
			if u.TotalDistanceM != want.TotalDistanceM || u.Activities != want.Activities {
				t.Errorf("shuffle %d: %s got (%v, %d), want (%v, %d)",
					i, id, u.TotalDistanceM, u.Activities, want.TotalDistanceM, want.Activities)
			}
			if !u.FirstActivity.Equal(*want.FirstActivity) || !u.LastActivity.Equal(*want.LastActivity) {
				t.Errorf("shuffle %d: %s first/last drifted", i, id)
			}
		}
	}
}

func TestAggregateBadDates(t *testing.T) {
	activities := []Activity{
		{ID: 1, GearID: "b123", Distance: 10000, StartDate: "not-a-date"},
		{ID: 2, GearID: "b123", Distance: 5000, StartDate: "2024-03-05T08:00:00Z"},
	}
	usage := Aggregate(activities, nil)
	u := usage["b123"]
	if u.TotalDistanceM != 15000 {
		t.Errorf("total meters = %v, want 15000 (distance counts even with a bad date)", u.TotalDistanceM)
	}
	if u.Activities != 2 {
		t.Errorf("activities = %d, want 2", u.Activities)
	}
	want := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	if !u.FirstActivity.Equal(want) || !u.LastActivity.Equal(want) {
		t.Error("date markers must skip unparseable starts")
	}
}

func TestAggregateAttachesHistory(t *testing.T) {
	history := map[string][]*MaintenanceRecord{
		"b123": {{ID: "m1", GearID: "b123", Type: "wash"}},
	}
	usage := Aggregate(testActivities(), history)
	if len(usage["b123"].Maintenance) != 1 {
		t.Error("expected maintenance history attached to b123")
	}
	if len(usage["b999"].Maintenance) != 0 {
		t.Error("b999 has no history")
	}
}

func TestDistanceKM(t *testing.T) {
	usage := Aggregate(testActivities(), nil)
	if got := DistanceKM(usage, "b123"); got != 35 {
		t.Errorf("DistanceKM(b123) = %v, want 35", got)
	}
	if got := DistanceKM(usage, "missing"); got != 0 {
		t.Errorf("DistanceKM(missing) = %v, want 0", got)
	}
}
