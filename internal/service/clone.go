package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
)

// CloneService deep-copies a trip's nested structure into a new trip.
// Two modes share one copy algorithm but differ in provenance handling:
// admin template duplication keeps the owner and drops expenses, while a
// share copy changes ownership and carries expenses along. Both reset
// share link, lock, and admin notes on the clone.
type CloneService struct {
	trips    repo.TripRepo
	stops    repo.StopRepo
	expenses repo.ExpenseRepo
	shares   repo.ShareRepo
	cloner   repo.CloneRepo
	audit    AuditRecorder
	now      func() time.Time
}

// NewCloneService constructs a CloneService backed by the provided repos.
func NewCloneService(trips repo.TripRepo, stops repo.StopRepo, expenses repo.ExpenseRepo, shares repo.ShareRepo, cloner repo.CloneRepo, audit AuditRecorder) *CloneService {
	return &CloneService{
		trips:    trips,
		stops:    stops,
		expenses: expenses,
		shares:   shares,
		cloner:   cloner,
		audit:    audit,
		now:      time.Now,
	}
}

// DuplicateTemplate copies a trip as a template under the same owner.
// Admin-only. The copy keeps dates and the full stop/activity structure,
// resets status to planning, and replaces admin notes with a provenance
// note referencing the source. Expenses are not copied — templates exist
// for itinerary reuse, not bookkeeping.
func (s *CloneService) DuplicateTemplate(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.Trip, error) {
	if !actor.IsAdmin {
		return domain.Trip{}, fmt.Errorf("service.CloneService.DuplicateTemplate: %w", domain.ErrForbidden)
	}

	source, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.DuplicateTemplate: %w", err)
	}
	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.DuplicateTemplate: %w", err)
	}

	clone := cloneTripCore(source)
	clone.OwnerID = source.OwnerID
	clone.Name = "[Template] " + source.Name
	clone.Status = domain.TripStatusPlanning
	clone.AdminNotes = fmt.Sprintf("duplicated from trip %s", source.ID)

	created, err := s.cloner.InsertTripGraph(ctx, clone, cloneStops(stops), nil)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.DuplicateTemplate: %w", err)
	}

	recordAudit(ctx, s.audit, domain.AuditFact{
		Action:     domain.AuditActionTripDuplicate,
		EntityType: "trip",
		EntityID:   created.ID,
		ActorID:    actor.ID,
		Detail:     fmt.Sprintf("template duplicated from trip %s", source.ID),
	})
	return created, nil
}

// CopyFromShare copies a shared trip into the requester's own account.
// The share must exist, be copyable, and not expired; copying your own
// trip through its share link is rejected. The copy carries stops,
// activities, and expenses, and starts with no share link, no admin notes,
// and unlocked.
func (s *CloneService) CopyFromShare(ctx context.Context, actor domain.Actor, shareID string) (domain.Trip, error) {
	share, err := s.shares.GetByShareID(ctx, shareID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: %w", err)
	}
	if !share.IsPublic || share.Expired(s.now()) {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: %w", domain.ErrNotFound)
	}
	if !share.CanCopy {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: %w", domain.ErrForbidden)
	}

	source, err := s.trips.GetByID(ctx, share.TripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: %w", err)
	}
	if source.OwnerID == actor.ID {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: copy own trip: %w", domain.ErrForbidden)
	}

	stops, err := s.stops.ListByTrip(ctx, share.TripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: %w", err)
	}
	expenses, err := s.expenses.ListByTrip(ctx, share.TripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: %w", err)
	}

	clone := cloneTripCore(source)
	clone.OwnerID = actor.ID
	clone.Name = source.Name + " (Copy)"
	clone.Status = domain.TripStatusPlanning

	created, err := s.cloner.InsertTripGraph(ctx, clone, cloneStops(stops), cloneExpenses(expenses))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.CloneService.CopyFromShare: %w", err)
	}
	return created, nil
}

// cloneTripCore copies the fields both modes carry over. Provenance and
// admin-only state always reset: no share link, no admin notes, unlocked.
func cloneTripCore(source domain.Trip) domain.Trip {
	return domain.Trip{
		Name:        source.Name,
		Description: source.Description,
		StartDate:   source.StartDate,
		EndDate:     source.EndDate,
		CoverImage:  source.CoverImage,
		IsLocked:    false,
		AdminNotes:  "",
	}
}

// cloneStops deep-copies stops and their activities, clearing IDs so the
// database assigns fresh ones. Order is recomputed 1..N from the source
// ordering rather than copied verbatim, so gaps in a corrupted source
// don't propagate.
func cloneStops(source []domain.Stop) []domain.Stop {
	stops := make([]domain.Stop, len(source))
	copy(stops, source)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Order < stops[j].Order })

	for i := range stops {
		stops[i].ID = uuid.Nil
		stops[i].TripID = uuid.Nil
		stops[i].Order = i + 1

		activities := make([]domain.Activity, len(stops[i].Activities))
		copy(activities, stops[i].Activities)
		for j := range activities {
			activities[j].ID = uuid.Nil
			activities[j].StopID = uuid.Nil
		}
		stops[i].Activities = activities
	}
	return stops
}

// cloneExpenses deep-copies the ledger rows, clearing IDs.
func cloneExpenses(source []domain.Expense) []domain.Expense {
	expenses := make([]domain.Expense, len(source))
	copy(expenses, source)
	for i := range expenses {
		expenses[i].ID = uuid.Nil
		expenses[i].TripID = uuid.Nil
	}
	return expenses
}
