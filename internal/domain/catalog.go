package domain

import "github.com/google/uuid"

// City is read-only catalog data consumed by the cost estimator.
// CostIndex is a relative daily-living-cost score used purely as a
// multiplier; zero is a valid value, not an error.
type City struct {
	ID        uuid.UUID
	Name      string
	Country   string
	CostIndex float64
}

// Attraction is read-only catalog data an activity may reference.
type Attraction struct {
	ID     uuid.UUID
	CityID uuid.UUID
	Name   string
	Cost   float64
	Type   ActivityType
}
