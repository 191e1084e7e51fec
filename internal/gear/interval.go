package gear

import (
	"fmt"
	"time"
)

const (
	IntervalTime     = "time"
	IntervalDistance = "distance"
)

// A ServiceInterval schedules recurring work on a piece of gear. It is
// anchored to the latest maintenance record for its item at creation time
// and is never re-anchored; logging further maintenance does not move the
// due point.
type ServiceInterval struct {
	ID     string
	GearID string
	// Item matches maintenance record types, compared case-insensitively.
	Item string
	// Type is IntervalTime or IntervalDistance.
	Type string
	// Value is weeks for time intervals, kilometers for distance intervals.
	Value float64
	// Action is free text describing the work due, lowercased.
	Action string
	// AnchorDate and AnchorKM capture the maintenance record the interval
	// was created against.
	AnchorDate time.Time
	AnchorKM   float64
}

// NewServiceInterval validates and builds an interval anchored to the given
// maintenance record. The anchor km is the gear's cumulative distance at
// anchor time, supplied by the caller.
func NewServiceInterval(id, gearID, item, typ string, value float64, action string, anchor *MaintenanceRecord, anchorKM float64) (*ServiceInterval, error) {
	switch typ {
	case IntervalTime, IntervalDistance:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidIntervalType, typ)
	}
	if value <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIntervalValue, value)
	}
	if anchor == nil {
		return nil, ErrNoMaintenanceHistory
	}
	return &ServiceInterval{
		ID:         id,
		GearID:     gearID,
		Item:       NormalizeType(item),
		Type:       typ,
		Value:      value,
		Action:     NormalizeType(action),
		AnchorDate: anchor.Date,
		AnchorKM:   anchorKM,
	}, nil
}

// NextDueKM is the cumulative gear distance at which a distance interval
// comes due. Only meaningful for distance intervals.
func (s *ServiceInterval) NextDueKM() float64 {
	return s.AnchorKM + s.Value
}

// NextDueDate is the date a time interval comes due.
func (s *ServiceInterval) NextDueDate() time.Time {
	return s.AnchorDate.AddDate(0, 0, int(s.Value)*7)
}

// Due reports whether the interval has come due given the gear's current
// cumulative distance and the current time.
func (s *ServiceInterval) Due(currentKM float64, now time.Time) bool {
	if s.Type == IntervalDistance {
		return currentKM >= s.NextDueKM()
	}
	return !now.Before(s.NextDueDate())
}

// Remaining describes how far off the due point is, as kilometers for
// distance intervals and days for time intervals. Negative means overdue.
func (s *ServiceInterval) Remaining(currentKM float64, now time.Time) float64 {
	if s.Type == IntervalDistance {
		return s.NextDueKM() - currentKM
	}
	return s.NextDueDate().Sub(now).Hours() / 24
}
