package gear

import (
	"errors"
	"testing"
	"time"
)

func TestNewServiceInterval(t *testing.T) {
	anchor := &MaintenanceRecord{ID: "m1", GearID: "b123", Type: "wash", Date: day(6)}

	tests := []struct {
		name    string
		typ     string
		value   float64
		anchor  *MaintenanceRecord
		wantErr error
	}{
		{"valid distance", IntervalDistance, 500, anchor, nil},
		{"valid time", IntervalTime, 4, anchor, nil},
		{"bad type", "mileage", 500, anchor, ErrInvalidIntervalType},
		{"zero value", IntervalDistance, 0, anchor, ErrInvalidIntervalValue},
		{"negative value", IntervalTime, -2, anchor, ErrInvalidIntervalValue},
		{"no history", IntervalDistance, 500, nil, ErrNoMaintenanceHistory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServiceInterval("i1", "b123", "Wash", tt.typ, tt.value, "Deep Clean", tt.anchor, 35)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if s.Item != "wash" {
				t.Errorf("item = %q, want lowercased %q", s.Item, "wash")
			}
			if s.Action != "deep clean" {
				t.Errorf("action = %q, want lowercased %q", s.Action, "deep clean")
			}
			if !s.AnchorDate.Equal(anchor.Date) || s.AnchorKM != 35 {
				t.Errorf("anchor = (%v, %v), want (%v, 35)", s.AnchorDate, s.AnchorKM, anchor.Date)
			}
		})
	}
}

func TestIntervalDue(t *testing.T) {
	anchor := &MaintenanceRecord{ID: "m1", Date: day(6)}

	dist, err := NewServiceInterval("i1", "b123", "wash", IntervalDistance, 500, "", anchor, 35)
	if err != nil {
		t.Fatal(err)
	}
	if got := dist.NextDueKM(); got != 535 {
		t.Errorf("NextDueKM = %v, want 535", got)
	}
	if dist.Due(534.9, day(20)) {
		t.Error("not yet due at 534.9 km")
	}
	if !dist.Due(535, day(20)) {
		t.Error("due exactly at 535 km")
	}
	if got := dist.Remaining(500, day(20)); got != 35 {
		t.Errorf("Remaining = %v, want 35", got)
	}

	tm, err := NewServiceInterval("i2", "b123", "wash", IntervalTime, 2, "", anchor, 35)
	if err != nil {
		t.Fatal(err)
	}
	wantDue := day(6).AddDate(0, 0, 14)
	if !tm.NextDueDate().Equal(wantDue) {
		t.Errorf("NextDueDate = %v, want %v", tm.NextDueDate(), wantDue)
	}
	if tm.Due(0, wantDue.Add(-time.Hour)) {
		t.Error("not due an hour before the due date")
	}
	if !tm.Due(0, wantDue) {
		t.Error("due at the due instant")
	}
}
