package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/mheller/wayfarer/internal/catalog"
	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
)

// shareTokenBytes yields a 22-character URL-safe token — collisions are
// negligible, and the rare one is retried rather than surfaced.
const shareTokenBytes = 16

// ShareService manages the single public share link of a trip and serves
// the read-only projection behind it.
type ShareService struct {
	trips   repo.TripRepo
	shares  repo.ShareRepo
	stops   repo.StopRepo
	catalog catalog.Reader
	now     func() time.Time
}

// NewShareService constructs a ShareService backed by the provided repos
// and catalog reader.
func NewShareService(trips repo.TripRepo, shares repo.ShareRepo, stops repo.StopRepo, c catalog.Reader) *ShareService {
	return &ShareService{trips: trips, shares: shares, stops: stops, catalog: c, now: time.Now}
}

// ShareParams carries the caller-controlled share settings.
type ShareParams struct {
	IsPublic  bool
	CanCopy   bool
	ExpiresAt *time.Time
}

// Create issues a share link for the trip. Only the trip owner may share.
// A trip holds at most one link: a second create fails with
// domain.ErrConflict while the original link stays valid. Token collisions
// are retried internally with fresh tokens and never surface to the caller.
func (s *ShareService) Create(ctx context.Context, actor domain.Actor, tripID uuid.UUID, params ShareParams) (domain.SharedTrip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.Create: %w", err)
	}
	if trip.OwnerID != actor.ID {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.Create: %w", domain.ErrForbidden)
	}

	var created domain.SharedTrip
	backoff := retry.WithMaxRetries(4, retry.NewConstant(time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		token, err := newShareToken()
		if err != nil {
			return err
		}
		created, err = s.shares.Create(ctx, domain.SharedTrip{
			TripID:    tripID,
			ShareID:   token,
			IsPublic:  params.IsPublic,
			CanCopy:   params.CanCopy,
			ExpiresAt: params.ExpiresAt,
		})
		if errors.Is(err, repo.ErrShareIDTaken) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.Create: %w", err)
	}
	return created, nil
}

// Update toggles visibility flags on an existing link. Owner-only; the
// share token itself never changes.
func (s *ShareService) Update(ctx context.Context, actor domain.Actor, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.Update: %w", err)
	}
	if trip.OwnerID != actor.ID {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.Update: %w", domain.ErrForbidden)
	}

	updated, err := s.shares.UpdateFlags(ctx, tripID, isPublic, canCopy)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.Update: %w", err)
	}
	return updated, nil
}

// GetByTripID returns the trip's share link for its owner.
func (s *ShareService) GetByTripID(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.SharedTrip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.GetByTripID: %w", err)
	}
	if trip.OwnerID != actor.ID && !actor.IsAdmin {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.GetByTripID: %w", domain.ErrForbidden)
	}

	share, err := s.shares.GetByTripID(ctx, tripID)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.GetByTripID: %w", err)
	}
	return share, nil
}

// Revoke deletes the trip's share link; outstanding tokens become invalid
// immediately. Owner-only.
func (s *ShareService) Revoke(ctx context.Context, actor domain.Actor, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.ShareService.Revoke: %w", err)
	}
	if trip.OwnerID != actor.ID {
		return fmt.Errorf("service.ShareService.Revoke: %w", domain.ErrForbidden)
	}

	if err := s.shares.DeleteByTripID(ctx, tripID); err != nil {
		return fmt.Errorf("service.ShareService.Revoke: %w", err)
	}
	return nil
}

// Resolve serves the anonymous share-link view. Revoked, private, and
// expired links all look identical to the viewer: not found.
// The projection carries no admin notes, no owner identity, and no expenses.
func (s *ShareService) Resolve(ctx context.Context, shareID string) (domain.SharedTripView, error) {
	share, err := s.shares.GetByShareID(ctx, shareID)
	if err != nil {
		return domain.SharedTripView{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
	}
	if !share.IsPublic || share.Expired(s.now()) {
		return domain.SharedTripView{}, fmt.Errorf("service.ShareService.Resolve: %w", domain.ErrNotFound)
	}

	trip, err := s.trips.GetByID(ctx, share.TripID)
	if err != nil {
		return domain.SharedTripView{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
	}
	stops, err := s.stops.ListByTrip(ctx, share.TripID)
	if err != nil {
		return domain.SharedTripView{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
	}
	estimated, err := estimateStops(ctx, s.catalog, stops)
	if err != nil {
		return domain.SharedTripView{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
	}
	if stops == nil {
		stops = []domain.Stop{}
	}

	return domain.SharedTripView{
		TripName:    trip.Name,
		Description: trip.Description,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		CoverImage:  trip.CoverImage,
		CanCopy:     share.CanCopy,
		Stops:       stops,
		Estimated:   estimated,
	}, nil
}

// newShareToken generates an opaque URL-safe share token.
func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
