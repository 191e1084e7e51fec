package gear

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

func ids(activities []Activity) []int64 {
	out := make([]int64, len(activities))
	for i, a := range activities {
		out[i] = a.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBetween(t *testing.T) {
	activities := []Activity{
		{ID: 1, StartDate: "2024-03-01T12:00:00Z"},
		{ID: 2, StartDate: "2024-03-03T12:00:00Z"},
		{ID: 3, StartDate: "garbage"},
		{ID: 4, StartDate: "2024-03-05T12:00:00Z"},
		{ID: 5, StartDate: "2024-03-07T12:00:00Z"},
	}

	start := day(3)
	tests := []struct {
		name  string
		start *time.Time
		end   time.Time
		want  []int64
	}{
		{"bounded", &start, day(5), []int64{2, 4}},
		{"nil start is unbounded", nil, day(5), []int64{1, 2, 4}},
		{"inclusive end", nil, day(7), []int64{1, 2, 4, 5}},
		{"empty window", &start, day(2), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Between(activities, tt.start, tt.end))
			if !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBetweenPreservesOrder(t *testing.T) {
	activities := []Activity{
		{ID: 9, StartDate: "2024-03-06T12:00:00Z"},
		{ID: 2, StartDate: "2024-03-02T12:00:00Z"},
		{ID: 5, StartDate: "2024-03-04T12:00:00Z"},
	}
	got := ids(Between(activities, nil, day(7)))
	if !equalIDs(got, []int64{9, 2, 5}) {
		t.Errorf("input order not preserved: %v", got)
	}
}

func TestSinceLastExcludesLowerBound(t *testing.T) {
	activities := []Activity{
		{ID: 1, StartDate: "2024-03-03T12:00:00Z"},
		{ID: 2, StartDate: "2024-03-05T12:00:00Z"},
	}
	after := day(3)
	got := ids(SinceLast(activities, &after, day(6)))
	if !equalIDs(got, []int64{2}) {
		t.Errorf("got %v, want [2]: activity at the previous maintenance instant must not recount", got)
	}

	got = ids(SinceLast(activities, nil, day(6)))
	if !equalIDs(got, []int64{1, 2}) {
		t.Errorf("nil lower bound: got %v, want [1 2]", got)
	}
}
