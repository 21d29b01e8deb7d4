package site

import "time"

// Site is a physical work location with a circular geofence. Clock actions
// are only accepted from inside the radius.
type Site struct {
	ID           string
	CompanyID    string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
