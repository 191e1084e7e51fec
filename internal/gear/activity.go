package gear

import "time"

// Activity is the slice of a Strava activity the reconciliation core cares
// about. StartDate stays the raw RFC3339 string from the feed; upstream data
// occasionally carries dates that don't parse, and callers that need the
// instant go through Start so they can decide what to do with a bad one.
type Activity struct {
	ID        int64
	GearID    string
	SportType string
	Distance  float64 // meters
	StartDate string  // RFC3339, UTC
}

// Start parses the activity's start date.
func (a Activity) Start() (time.Time, error) {
	return time.Parse(time.RFC3339, a.StartDate)
}

// ActivityStub is the minimal activity snapshot captured on a maintenance
// record at creation time. It is never recomputed afterwards.
type ActivityStub struct {
	ID        int64
	StartDate string
	Distance  float64 // meters
}

// Stub reduces an activity to its snapshot form.
func (a Activity) Stub() ActivityStub {
	return ActivityStub{ID: a.ID, StartDate: a.StartDate, Distance: a.Distance}
}
