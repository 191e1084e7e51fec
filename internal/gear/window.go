package gear

import "time"

// Between selects the activities whose start date falls in [start, end].
// A nil start leaves the lower bound unconstrained. Input order is preserved.
// Activities whose start date does not parse are skipped; a partially corrupt
// feed must not take the whole selection down.
func Between(activities []Activity, start *time.Time, end time.Time) []Activity {
	var selected []Activity
	for _, a := range activities {
		t, err := a.Start()
		if err != nil {
			continue
		}
		if start != nil && t.Before(*start) {
			continue
		}
		if t.After(end) {
			continue
		}
		selected = append(selected, a)
	}
	return selected
}

// SinceLast selects the activities in (after, until] — the window between a
// previous maintenance event and now. A nil after means the gear's whole
// history. Same ordering and bad-date tolerance as Between.
func SinceLast(activities []Activity, after *time.Time, until time.Time) []Activity {
	var selected []Activity
	for _, a := range activities {
		t, err := a.Start()
		if err != nil {
			continue
		}
		if after != nil && !t.After(*after) {
			continue
		}
		if t.After(until) {
			continue
		}
		selected = append(selected, a)
	}
	return selected
}
