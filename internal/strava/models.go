package strava

// Activity represents a Strava activity summary from the API. StartDate is
// kept as the raw string so malformed values from the API survive untouched
// instead of failing the whole decode.
type Activity struct {
	ID        int64   `json:"id"`
	Athlete   Athlete `json:"athlete"`
	Name      string  `json:"name"`
	SportType string  `json:"sport_type"`
	GearID    string  `json:"gear_id"`
	StartDate string  `json:"start_date"`
	Distance  float64 `json:"distance"` // meters
}

// Athlete represents a Strava athlete
type Athlete struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Bikes     []Gear `json:"bikes"`
	Shoes     []Gear `json:"shoes"`
}

// Gear represents a bike or pair of shoes from /gear/{id} or the athlete
// profile
type Gear struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BrandName string  `json:"brand_name"`
	ModelName string  `json:"model_name"`
	Distance  float64 `json:"distance"` // meters
	Retired   bool    `json:"retired"`
	Primary   bool    `json:"primary"`
}
