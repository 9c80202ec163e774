// Package service contains the business logic for the Wayfarer API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mheller/wayfarer/internal/domain"
)

// AuditRecorder receives structured fact records for privileged mutations.
// Persistence is external; repo.AuditRepo is the production implementation.
type AuditRecorder interface {
	Record(ctx context.Context, fact domain.AuditFact) error
}

// recordAudit emits a fact on a best-effort basis: a failure to persist the
// fact is logged but must never roll back or fail the mutation it describes.
func recordAudit(ctx context.Context, rec AuditRecorder, fact domain.AuditFact) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, fact); err != nil {
		slog.WarnContext(ctx, "audit record failed",
			"action", fact.Action,
			"entity_type", fact.EntityType,
			"entity_id", fact.EntityID,
			"error", err,
		)
	}
}

// adminActedOnBehalf builds the detail string for admin-on-behalf facts.
func adminActedOnBehalf(trip domain.Trip) string {
	return fmt.Sprintf("admin action on trip owned by %s", trip.OwnerID)
}
