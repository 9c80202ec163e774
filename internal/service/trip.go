package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
)

// TripService implements business logic for Trip CRUD.
type TripService struct {
	trips repo.TripRepo
	audit AuditRecorder
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo, audit AuditRecorder) *TripService {
	return &TripService{trips: trips, audit: audit}
}

// Create validates and persists a new trip owned by the actor.
// Status defaults to planning; admin-only fields (lock flag, admin notes)
// are only honored for admins and reset to their defaults otherwise.
func (s *TripService) Create(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error) {
	trip.OwnerID = actor.ID
	if !actor.IsAdmin {
		trip.IsLocked = false
		trip.AdminNotes = ""
	}
	if trip.Status == "" {
		trip.Status = domain.TripStatusPlanning
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip readable by the actor (owner or admin).
func (s *TripService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if err := actor.CanView(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListByOwner returns the given owner's trips. Non-admins may only list
// their own. Always returns a non-nil slice.
func (s *TripService) ListByOwner(ctx context.Context, actor domain.Actor, ownerID uuid.UUID) ([]domain.Trip, error) {
	if !actor.IsAdmin && ownerID != actor.ID {
		return nil, fmt.Errorf("service.TripService.ListByOwner: %w", domain.ErrForbidden)
	}
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByOwner: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and persists changes to an existing trip.
// Owners are blocked when the trip is locked; admins bypass the lock and
// the ownership check, but an admin edit of someone else's trip emits an
// audit fact. Non-admins can never change the lock flag or admin notes.
func (s *TripService) Update(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error) {
	current, err := s.trips.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := actor.CanMutate(current); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	trip.OwnerID = current.OwnerID
	if !actor.IsAdmin {
		trip.IsLocked = current.IsLocked
		trip.AdminNotes = current.AdminNotes
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if actor.IsAdmin && actor.ID != current.OwnerID {
		recordAudit(ctx, s.audit, domain.AuditFact{
			Action:     domain.AuditActionTripUpdate,
			EntityType: "trip",
			EntityID:   trip.ID,
			ActorID:    actor.ID,
			Detail:     adminActedOnBehalf(current),
		})
	}
	return result, nil
}

// Delete removes a trip. The cascade takes stops, activities, expenses,
// and the share link with it.
func (s *TripService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := actor.CanMutate(trip); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if actor.IsAdmin && actor.ID != trip.OwnerID {
		recordAudit(ctx, s.audit, domain.AuditFact{
			Action:     domain.AuditActionTripDelete,
			EntityType: "trip",
			EntityID:   id,
			ActorID:    actor.ID,
			Detail:     adminActedOnBehalf(trip),
		})
	}
	return nil
}

// validateTrip enforces business rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate must be strictly after StartDate.
//   - Status must be one of the known values.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !trip.EndDate.After(trip.StartDate) {
		return fmt.Errorf("%w: endDate must be after startDate", domain.ErrValidation)
	}
	if !domain.ValidTripStatus(trip.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	return nil
}
