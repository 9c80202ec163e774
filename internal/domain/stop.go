package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop is one city-visit segment of a trip. Stops carry a dense 1-based
// Order unique within their trip, and a half-open date range
// [StartDate, EndDate) that must fall inside the parent trip's range.
// No two stops of the same trip may reference the same city.
//
// CityID is a weak reference into the catalog — the city itself is not
// owned by the stop and is looked up at estimate time.
type Stop struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	CityID     uuid.UUID
	Order      int
	StartDate  time.Time
	EndDate    time.Time
	Notes      string
	Activities []Activity
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
