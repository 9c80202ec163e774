package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType categorizes a planned activity.
type ActivityType string

const (
	ActivityTypeSightseeing   ActivityType = "sightseeing"
	ActivityTypeCulture       ActivityType = "culture"
	ActivityTypeFood          ActivityType = "food"
	ActivityTypeOutdoor       ActivityType = "outdoor"
	ActivityTypeEntertainment ActivityType = "entertainment"
	ActivityTypeOther         ActivityType = "other"
)

// ValidActivityType reports whether t is one of the known activity types.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityTypeSightseeing, ActivityTypeCulture, ActivityTypeFood,
		ActivityTypeOutdoor, ActivityTypeEntertainment, ActivityTypeOther:
		return true
	}
	return false
}

// Activity is a planned, priced action within a stop.
// AttractionID is nil for custom (ad-hoc) activities that don't reference
// the catalog. Cost is planned spend and must be >= 0.
type Activity struct {
	ID           uuid.UUID
	StopID       uuid.UUID
	AttractionID *uuid.UUID
	Name         string
	Type         ActivityType
	Cost         float64
	DurationMin  *int
	ScheduledAt  *time.Time
	Notes        string
	CreatedAt    time.Time
}
