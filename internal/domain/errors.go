package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. duplicate city in an itinerary, end date before
// start date, non-positive expense amount).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the acting user is not allowed to perform
// the operation (not the owner, not an admin, or copying their own trip).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrLocked is returned when a non-admin attempts to mutate a locked trip.
// Handlers should map this to HTTP 403.
var ErrLocked = errors.New("trip is locked")

// ErrConflict is returned when a uniqueness rule rejects the operation,
// e.g. creating a second share link for a trip that already has one.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
