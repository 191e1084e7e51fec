package store

import (
	"errors"
	"testing"
	"time"

	"gearwear/internal/gear"
)

func testRecord(id, gearID, typ string, date time.Time, stubs ...gear.ActivityStub) *gear.MaintenanceRecord {
	return &gear.MaintenanceRecord{
		ID:         id,
		GearID:     gearID,
		Type:       typ,
		Date:       date,
		Notes:      "test",
		Activities: stubs,
	}
}

func TestMaintenanceRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	date := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	r := testRecord("m1", "b1", "WASH", date,
		gear.ActivityStub{ID: 1, StartDate: "2024-03-01T08:00:00Z", Distance: 10000},
		gear.ActivityStub{ID: 2, StartDate: "2024-03-03T08:00:00Z", Distance: 20000},
		gear.ActivityStub{ID: 3, StartDate: "2024-03-05T08:00:00Z", Distance: 5000},
	)
	if err := db.SaveMaintenanceRecord(r); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetMaintenanceRecord("m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != "wash" {
		t.Errorf("type = %q, want lowercased %q", got.Type, "wash")
	}
	if !got.Date.Equal(date) {
		t.Errorf("date = %v, want %v", got.Date, date)
	}
	if len(got.Activities) != 3 {
		t.Fatalf("snapshot size = %d, want 3", len(got.Activities))
	}
	if got.Distance() != 35 {
		t.Errorf("Distance() = %v, want 35", got.Distance())
	}
}

func TestLatestMaintenanceOfType(t *testing.T) {
	db := setupTestDB(t)

	d1 := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	if err := db.SaveMaintenanceRecord(testRecord("m1", "b1", "wash", d1)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMaintenanceRecord(testRecord("m2", "b1", "wash", d2)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMaintenanceRecord(testRecord("m3", "b1", "lube_chain", d2)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMaintenanceRecord(testRecord("m4", "b2", "wash", d2)); err != nil {
		t.Fatal(err)
	}

	got, err := db.LatestMaintenanceOfType("b1", "Wash")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "m2" {
		t.Errorf("latest = %s, want m2", got.ID)
	}

	if _, err := db.LatestMaintenanceOfType("b1", "brake_pads"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestListMaintenanceFilters(t *testing.T) {
	db := setupTestDB(t)

	d := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	for _, r := range []*gear.MaintenanceRecord{
		testRecord("m1", "b1", "wash", d),
		testRecord("m2", "b2", "wash", d.Add(time.Hour)),
		testRecord("m3", "b1", "lube_chain", d.Add(2*time.Hour)),
	} {
		if err := db.SaveMaintenanceRecord(r); err != nil {
			t.Fatal(err)
		}
	}

	records, err := db.ListMaintenanceRecords("b1", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != "m1" || records[1].ID != "m3" {
		t.Errorf("expected ascending by date, got %s then %s", records[0].ID, records[1].ID)
	}

	washes, err := db.ListMaintenanceRecords("b1", "Wash")
	if err != nil {
		t.Fatal(err)
	}
	if len(washes) != 1 || washes[0].ID != "m1" {
		t.Errorf("type filter: %+v", washes)
	}

	byGear, err := db.MaintenanceByGear()
	if err != nil {
		t.Fatal(err)
	}
	if len(byGear["b1"]) != 2 || len(byGear["b2"]) != 1 {
		t.Errorf("byGear = %v", byGear)
	}
}

func TestLatestMaintenanceAcrossOffsets(t *testing.T) {
	db := setupTestDB(t)

	// The chronologically later record carries the lexicographically
	// smaller local date string; dates are normalized to UTC on write so
	// the TEXT ordering stays chronological.
	early := time.Date(2024, 3, 10, 1, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)) // 2024-03-09T20:00:00Z
	late := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	if err := db.SaveMaintenanceRecord(testRecord("m1", "b1", "wash", early)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMaintenanceRecord(testRecord("m2", "b1", "wash", late)); err != nil {
		t.Fatal(err)
	}

	got, err := db.LatestMaintenanceOfType("b1", "wash")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "m2" {
		t.Errorf("latest = %s, want the chronologically newer m2", got.ID)
	}
}

func TestDeleteMaintenanceCascades(t *testing.T) {
	db := setupTestDB(t)

	d := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	r := testRecord("m1", "b1", "wash", d, gear.ActivityStub{ID: 1, StartDate: "2024-03-01T08:00:00Z", Distance: 10000})
	if err := db.SaveMaintenanceRecord(r); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteMaintenanceRecord("m1"); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteMaintenanceRecord("m1"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("double delete: err = %v, want ErrRecordNotFound", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM maintenance_activities`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("snapshot rows survived delete: %d", count)
	}
}
