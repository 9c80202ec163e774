package domain

import "github.com/google/uuid"

// Actor identifies who is performing an operation. Authentication and role
// resolution happen upstream; the engine only ever receives a pre-resolved
// actor and never consults ambient session state.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// CanMutate returns nil when the actor may mutate the given trip.
// Admins bypass both ownership and the lock; owners are blocked by the lock.
func (a Actor) CanMutate(trip Trip) error {
	if a.IsAdmin {
		return nil
	}
	if a.ID != trip.OwnerID {
		return ErrForbidden
	}
	if trip.IsLocked {
		return ErrLocked
	}
	return nil
}

// CanView returns nil when the actor may read the given trip directly
// (share-link access goes through the public projection instead).
func (a Actor) CanView(trip Trip) error {
	if a.IsAdmin || a.ID == trip.OwnerID {
		return nil
	}
	return ErrForbidden
}
