package store

import (
	"time"

	"gearwear/internal/gear"
)

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64
	AthleteName  string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Scope        string
}

// Activity is a cached Strava activity summary. StartDate is kept as the
// raw string the API returned.
type Activity struct {
	ID        int64
	AthleteID int64
	Name      string
	SportType string
	GearID    string
	StartDate string
	Distance  float64 // meters
}

// Gear converts the cached row to the reconciliation type.
func (a Activity) Gear() gear.Activity {
	return gear.Activity{
		ID:        a.ID,
		GearID:    a.GearID,
		SportType: a.SportType,
		Distance:  a.Distance,
		StartDate: a.StartDate,
	}
}

// Gear is a bike or pair of shoes as Strava knows it
type Gear struct {
	ID        string
	Name      string
	BrandName string
	ModelName string
	Distance  float64 // meters, Strava's own odometer
	Retired   bool
}
