package gear

import (
	"testing"
)

func TestRecordDistance(t *testing.T) {
	r := &MaintenanceRecord{
		Activities: []ActivityStub{
			{ID: 1, Distance: 10000},
			{ID: 2, Distance: 20000},
			{ID: 3, Distance: 5000},
		},
	}
	if got := r.Distance(); got != 35 {
		t.Errorf("Distance() = %v, want 35", got)
	}

	empty := &MaintenanceRecord{}
	if got := empty.Distance(); got != 0 {
		t.Errorf("empty Distance() = %v, want 0", got)
	}
}

func TestLatestOfType(t *testing.T) {
	records := []*MaintenanceRecord{
		{ID: "a", Type: "wash", Date: day(1)},
		{ID: "b", Type: "WASH", Date: day(6)},
		{ID: "c", Type: "lube_chain", Date: day(8)},
	}

	got := LatestOfType(records, "Wash")
	if got == nil || got.ID != "b" {
		t.Fatalf("LatestOfType(wash) = %+v, want record b", got)
	}
	if LatestOfType(records, "brake_pads") != nil {
		t.Error("expected nil for a type with no history")
	}
	if LatestOfType(nil, "wash") != nil {
		t.Error("expected nil for empty history")
	}
}

func TestTypeCatalog(t *testing.T) {
	c := NewTypeCatalog()

	if _, ok := c.Describe("wash"); !ok {
		t.Error("builtin wash type missing")
	}
	if _, ok := c.Describe("WASH"); !ok {
		t.Error("lookup must be case insensitive")
	}

	c.Register("Frame Inspection", "check the frame for cracks")
	desc, ok := c.Describe("frame inspection")
	if !ok || desc != "check the frame for cracks" {
		t.Errorf("custom type lookup failed: %q, %v", desc, ok)
	}

	keys := c.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
