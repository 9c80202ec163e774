package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mheller/wayfarer/internal/domain"
)

// ErrShareIDTaken is returned by ShareRepo.Create when the generated share
// token collides with an existing one. The service layer retries with a
// fresh token; this error never reaches a caller.
var ErrShareIDTaken = errors.New("share id taken")

// ShareRepo defines the persistence operations for SharedTrips.
// The one-link-per-trip policy is enforced by a unique constraint on
// trip_id, not by application-level checks.
type ShareRepo interface {
	// Create inserts a new share link. Returns domain.ErrConflict if the
	// trip already has one, and ErrShareIDTaken if the token collided.
	Create(ctx context.Context, share domain.SharedTrip) (domain.SharedTrip, error)

	// GetByTripID retrieves a trip's share link.
	// Returns domain.ErrNotFound if the trip has none.
	GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.SharedTrip, error)

	// GetByShareID retrieves a share link by its public token.
	// Returns domain.ErrNotFound if no such token exists.
	GetByShareID(ctx context.Context, shareID string) (domain.SharedTrip, error)

	// UpdateFlags overwrites is_public and can_copy for a trip's share link
	// and returns the updated record. The share token never changes.
	// Returns domain.ErrNotFound if the trip has no link.
	UpdateFlags(ctx context.Context, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error)

	// DeleteByTripID revokes a trip's share link. Any outstanding token
	// becomes immediately invalid. Returns domain.ErrNotFound if the trip
	// has no link.
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) error
}

// pgShareRepo is the Postgres implementation of ShareRepo.
type pgShareRepo struct {
	db db
}

// NewShareRepo constructs a ShareRepo backed by the provided db connection.
func NewShareRepo(db db) ShareRepo {
	return &pgShareRepo{db: db}
}

const shareColumns = `id, trip_id, share_id, is_public, can_copy, expires_at,
		created_at, updated_at`

func (r *pgShareRepo) Create(ctx context.Context, share domain.SharedTrip) (domain.SharedTrip, error) {
	const q = `
		INSERT INTO shared_trips (trip_id, share_id, is_public, can_copy, expires_at)
		VALUES (@trip_id, @share_id, @is_public, @can_copy, @expires_at)
		RETURNING ` + shareColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":    share.TripID,
		"share_id":   share.ShareID,
		"is_public":  share.IsPublic,
		"can_copy":   share.CanCopy,
		"expires_at": share.ExpiresAt,
	})
	result, err := scanShare(row)
	if err != nil {
		switch {
		case isUniqueViolation(err, "shared_trips_trip_id_key"):
			return domain.SharedTrip{}, fmt.Errorf("repo.ShareRepo.Create: %w", domain.ErrConflict)
		case isUniqueViolation(err, "shared_trips_share_id_key"):
			return domain.SharedTrip{}, fmt.Errorf("repo.ShareRepo.Create: %w", ErrShareIDTaken)
		}
		return domain.SharedTrip{}, fmt.Errorf("repo.ShareRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.SharedTrip, error) {
	const q = `
		SELECT ` + shareColumns + `
		FROM shared_trips
		WHERE trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	result, err := scanShare(row)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("repo.ShareRepo.GetByTripID: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) GetByShareID(ctx context.Context, shareID string) (domain.SharedTrip, error) {
	const q = `
		SELECT ` + shareColumns + `
		FROM shared_trips
		WHERE share_id = @share_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"share_id": shareID})
	result, err := scanShare(row)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("repo.ShareRepo.GetByShareID: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) UpdateFlags(ctx context.Context, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error) {
	const q = `
		UPDATE shared_trips
		SET is_public  = @is_public,
		    can_copy   = @can_copy,
		    updated_at = now()
		WHERE trip_id = @trip_id
		RETURNING ` + shareColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":   tripID,
		"is_public": isPublic,
		"can_copy":  canCopy,
	})
	result, err := scanShare(row)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("repo.ShareRepo.UpdateFlags: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM shared_trips WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ShareRepo.DeleteByTripID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ShareRepo.DeleteByTripID: %w", domain.ErrNotFound)
	}
	return nil
}

func scanShare(s scanner) (domain.SharedTrip, error) {
	var (
		share     domain.SharedTrip
		id        pgtype.UUID
		tripID    pgtype.UUID
		expiresAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &tripID, &share.ShareID, &share.IsPublic, &share.CanCopy,
		&expiresAt, &share.CreatedAt, &share.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SharedTrip{}, domain.ErrNotFound
		}
		return domain.SharedTrip{}, err
	}

	share.ID = uuid.UUID(id.Bytes)
	share.TripID = uuid.UUID(tripID.Bytes)
	if expiresAt.Valid {
		exp := expiresAt.Time
		share.ExpiresAt = &exp
	}

	return share, nil
}
