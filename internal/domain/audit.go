package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit action tags emitted by the engine for privileged mutations.
const (
	AuditActionItineraryReplace = "itinerary.replace"
	AuditActionTripUpdate       = "trip.update"
	AuditActionTripDelete       = "trip.delete"
	AuditActionTripDuplicate    = "trip.duplicate"
)

// AuditFact is a write-once record of a privileged mutation. The engine
// only emits facts; persistence is an external concern behind the
// service.AuditRecorder interface.
type AuditFact struct {
	Action     string
	EntityType string
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	Detail     string
	RecordedAt time.Time
}
