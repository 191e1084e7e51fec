package gear

import "time"

// Usage holds per-gear usage statistics derived from an activity list. It is
// a view, recomputed in full on every aggregation; nothing mutates it
// incrementally between calls.
type Usage struct {
	GearID          string
	SportTypes      map[string]struct{}
	TotalDistanceM  float64
	TotalDistanceKM float64
	Activities      int
	FirstActivity   *time.Time
	LastActivity    *time.Time

	// Maintenance is attached by reference from the ledger at aggregation
	// time; later ledger changes are visible through it until the caller
	// re-aggregates.
	Maintenance []*MaintenanceRecord
}

// Aggregate folds activities into per-gear usage. Activities without a gear
// id are skipped. The fold is commutative over every field it touches, so
// input order does not affect the result. history supplies each gear's
// maintenance records; it may be nil.
func Aggregate(activities []Activity, history map[string][]*MaintenanceRecord) map[string]*Usage {
	usage := make(map[string]*Usage)

	for _, a := range activities {
		if a.GearID == "" {
			continue
		}

		u, ok := usage[a.GearID]
		if !ok {
			u = &Usage{
				GearID:      a.GearID,
				SportTypes:  make(map[string]struct{}),
				Maintenance: history[a.GearID],
			}
			usage[a.GearID] = u
		}

		if a.SportType != "" {
			u.SportTypes[a.SportType] = struct{}{}
		}

		// km is recomputed from the meter total rather than accumulated
		// separately, so the two can't drift apart.
		u.TotalDistanceM += a.Distance
		u.TotalDistanceKM = u.TotalDistanceM / 1000
		u.Activities++

		start, err := a.Start()
		if err != nil {
			continue
		}
		if u.FirstActivity == nil || start.Before(*u.FirstActivity) {
			t := start
			u.FirstActivity = &t
		}
		if u.LastActivity == nil || start.After(*u.LastActivity) {
			t := start
			u.LastActivity = &t
		}
	}

	return usage
}

// DistanceKM returns the aggregated distance for one gear, zero when the gear
// has no activities.
func DistanceKM(usage map[string]*Usage, gearID string) float64 {
	if u, ok := usage[gearID]; ok {
		return u.TotalDistanceKM
	}
	return 0
}
