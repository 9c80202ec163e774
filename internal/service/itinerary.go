package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/catalog"
	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
)

// ItineraryService implements the whole-itinerary replace operation and the
// itinerary read path. Stop order and per-stop activity sets are edited
// together in one flow, so the service never patches individual stops.
type ItineraryService struct {
	trips   repo.TripRepo
	stops   repo.StopRepo
	catalog catalog.Reader
	audit   AuditRecorder
}

// NewItineraryService constructs an ItineraryService backed by the provided
// repos and catalog reader.
func NewItineraryService(trips repo.TripRepo, stops repo.StopRepo, c catalog.Reader, audit AuditRecorder) *ItineraryService {
	return &ItineraryService{trips: trips, stops: stops, catalog: c, audit: audit}
}

// Get returns a trip's stops in itinerary order, activities included.
// Always returns a non-nil slice.
func (s *ItineraryService) Get(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	if err := actor.CanView(trip); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}

	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// Replace atomically swaps the trip's full stop set for the given one.
// Caller-supplied order values are not trusted — Order is forced to array
// position + 1 before persisting. On any validation failure nothing is
// written and the prior itinerary stands.
//
// An admin replacing the itinerary of someone else's trip emits an audit fact.
func (s *ItineraryService) Replace(ctx context.Context, actor domain.Actor, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Replace: %w", err)
	}
	if err := actor.CanMutate(trip); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Replace: %w", err)
	}

	if err := s.validateStops(ctx, trip, stops); err != nil {
		return nil, err
	}
	domain.RenumberStops(stops)

	replaced, err := s.stops.ReplaceForTrip(ctx, tripID, stops)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Replace: %w", err)
	}

	if actor.IsAdmin && actor.ID != trip.OwnerID {
		recordAudit(ctx, s.audit, domain.AuditFact{
			Action:     domain.AuditActionItineraryReplace,
			EntityType: "trip",
			EntityID:   tripID,
			ActorID:    actor.ID,
			Detail:     adminActedOnBehalf(trip),
		})
	}
	return replaced, nil
}

// validateStops checks every precondition of the replace operation.
// Errors name the offending stop index and field so the UI can point at the
// exact row.
func (s *ItineraryService) validateStops(ctx context.Context, trip domain.Trip, stops []domain.Stop) error {
	seenCities := make(map[uuid.UUID]int, len(stops))

	for i, stop := range stops {
		if stop.CityID == uuid.Nil {
			return fmt.Errorf("%w: stops[%d].cityId is required", domain.ErrValidation, i)
		}
		if prev, dup := seenCities[stop.CityID]; dup {
			return fmt.Errorf("%w: stops[%d].cityId duplicates stops[%d]", domain.ErrValidation, i, prev)
		}
		seenCities[stop.CityID] = i

		// The city must exist in the catalog; a bad reference is caller
		// input error, not an internal failure.
		if _, err := s.catalog.GetCity(ctx, stop.CityID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: stops[%d].cityId: unknown city", domain.ErrValidation, i)
			}
			return fmt.Errorf("service.ItineraryService.Replace: %w", err)
		}

		if !stop.EndDate.After(stop.StartDate) {
			return fmt.Errorf("%w: stops[%d].endDate must be after startDate", domain.ErrValidation, i)
		}
		if stop.StartDate.Before(trip.StartDate) || stop.EndDate.After(trip.EndDate) {
			return fmt.Errorf("%w: stops[%d] dates fall outside the trip range", domain.ErrValidation, i)
		}

		for j, a := range stop.Activities {
			if err := validateActivity(a); err != nil {
				return fmt.Errorf("%w: stops[%d].activities[%d]: %v", domain.ErrValidation, i, j, errMessage(err))
			}

			// Attraction references are optional, but a present one must
			// resolve — same caller-input rule as the city check above.
			if a.AttractionID != nil {
				if _, err := s.catalog.GetAttraction(ctx, *a.AttractionID); err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						return fmt.Errorf("%w: stops[%d].activities[%d].attractionId: unknown attraction", domain.ErrValidation, i, j)
					}
					return fmt.Errorf("service.ItineraryService.Replace: %w", err)
				}
			}
		}
	}
	return nil
}

// validateActivity enforces per-activity rules inside a replace.
func validateActivity(a domain.Activity) error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("name is required")
	}
	if !domain.ValidActivityType(a.Type) {
		return fmt.Errorf("unknown type %q", a.Type)
	}
	if a.Cost < 0 {
		return errors.New("cost must not be negative")
	}
	if a.DurationMin != nil && *a.DurationMin < 0 {
		return errors.New("duration must not be negative")
	}
	return nil
}

// errMessage flattens a validation error for embedding in a field path.
func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
