package domain

import (
	"time"

	"github.com/google/uuid"
)

// SharedTrip is the single public share link of a trip. At most one exists
// per trip, enforced by a uniqueness constraint on TripID. ShareID is an
// opaque URL-safe token; lookup by ShareID is the only path by which a
// third party reaches trip data.
type SharedTrip struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	ShareID   string
	IsPublic  bool
	CanCopy   bool
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the link has an expiry in the past relative to now.
func (s SharedTrip) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// SharedTripView is the read-only projection served to share-link viewers.
// It deliberately omits owner identity, admin notes, the lock flag, and
// expenses — only the plan itself and its estimated cost are public.
type SharedTripView struct {
	TripName    string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CoverImage  string
	CanCopy     bool
	Stops       []Stop
	Estimated   EstimatedCost
}
