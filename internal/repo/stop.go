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

// StopRepo defines the persistence operations for Stops and their nested
// Activities. The itinerary is always written wholesale: stop order and
// per-stop activity sets are edited together, so there is no per-stop
// create/update surface.
type StopRepo interface {
	// ListByTrip returns all stops for a trip ordered by position ascending,
	// each with its activities populated.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// ReplaceForTrip atomically discards the trip's existing stops (and,
	// via cascade, their activities) and persists the given stops in array
	// order. The caller is responsible for having assigned dense Order
	// values; positions are written exactly as given.
	// Either the full new stop set lands or none of it does.
	ReplaceForTrip(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db txdb
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx — the replace
// transaction then nests as a savepoint and rollback isolation still holds.
func NewStopRepo(db txdb) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, trip_id, city_id, position, start_date, end_date,
		notes, created_at, updated_at`

// ListByTrip loads stops ordered by position, then attaches activities in a
// second query to avoid a row-multiplying join.
func (r *pgStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	stops, err := listStops(ctx, r.db, tripID)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: %w", err)
	}
	if err := attachActivities(ctx, r.db, tripID, stops); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: %w", err)
	}
	return stops, nil
}

// ReplaceForTrip deletes and reinserts the full stop set in one transaction.
func (r *pgStopRepo) ReplaceForTrip(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ReplaceForTrip: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	const del = `DELETE FROM stops WHERE trip_id = @trip_id`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ReplaceForTrip: delete: %w", err)
	}

	out := make([]domain.Stop, 0, len(stops))
	for i, stop := range stops {
		inserted, err := insertStop(ctx, tx, tripID, stop)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ReplaceForTrip: stop %d: %w", i, err)
		}
		out = append(out, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ReplaceForTrip: commit: %w", err)
	}
	return out, nil
}

// insertStop persists one stop and its activities inside the given tx.
func insertStop(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO stops (trip_id, city_id, position, start_date, end_date, notes)
		VALUES (@trip_id, @city_id, @position, @start_date, @end_date, @notes)
		RETURNING ` + stopColumns

	row := tx.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":    tripID,
		"city_id":    stop.CityID,
		"position":   stop.Order,
		"start_date": stop.StartDate,
		"end_date":   stop.EndDate,
		"notes":      stop.Notes,
	})
	inserted, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, err
	}

	for _, a := range stop.Activities {
		act, err := insertActivity(ctx, tx, inserted.ID, a)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("activity %q: %w", a.Name, err)
		}
		inserted.Activities = append(inserted.Activities, act)
	}
	return inserted, nil
}

func insertActivity(ctx context.Context, tx pgx.Tx, stopID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (stop_id, attraction_id, name, type, cost,
		                        duration_min, scheduled_at, notes)
		VALUES (@stop_id, @attraction_id, @name, @type, @cost,
		        @duration_min, @scheduled_at, @notes)
		RETURNING id, stop_id, attraction_id, name, type, cost,
		          duration_min, scheduled_at, notes, created_at`

	row := tx.QueryRow(ctx, q, pgx.NamedArgs{
		"stop_id":       stopID,
		"attraction_id": a.AttractionID, // nil becomes NULL for custom activities
		"name":          a.Name,
		"type":          string(a.Type),
		"cost":          a.Cost,
		"duration_min":  a.DurationMin,
		"scheduled_at":  a.ScheduledAt,
		"notes":         a.Notes,
	})
	return scanActivity(row)
}

// listStops returns a trip's stops ordered by position, activities not yet attached.
func listStops(ctx context.Context, db db, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY position ASC`

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

// attachActivities populates Activities on each stop with a single query
// over the whole trip.
func attachActivities(ctx context.Context, db db, tripID uuid.UUID, stops []domain.Stop) error {
	if len(stops) == 0 {
		return nil
	}

	const q = `
		SELECT a.id, a.stop_id, a.attraction_id, a.name, a.type, a.cost,
		       a.duration_min, a.scheduled_at, a.notes, a.created_at
		FROM activities a
		JOIN stops s ON s.id = a.stop_id
		WHERE s.trip_id = @trip_id
		ORDER BY a.scheduled_at NULLS LAST, a.created_at`

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return err
	}
	defer rows.Close()

	byStop := make(map[uuid.UUID]int, len(stops))
	for i, s := range stops {
		byStop[s.ID] = i
	}

	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return fmt.Errorf("scan activity: %w", err)
		}
		if i, ok := byStop[a.StopID]; ok {
			stops[i].Activities = append(stops[i].Activities, a)
		}
	}
	return rows.Err()
}

func scanStop(s scanner) (domain.Stop, error) {
	var (
		stop   domain.Stop
		id     pgtype.UUID
		tripID pgtype.UUID
		cityID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)

	err := s.Scan(&id, &tripID, &cityID, &stop.Order, &start, &end,
		&stop.Notes, &stop.CreatedAt, &stop.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	stop.ID = uuid.UUID(id.Bytes)
	stop.TripID = uuid.UUID(tripID.Bytes)
	stop.CityID = uuid.UUID(cityID.Bytes)
	stop.StartDate = start.Time
	stop.EndDate = end.Time

	return stop, nil
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a            domain.Activity
		id           pgtype.UUID
		stopID       pgtype.UUID
		attractionID pgtype.UUID
		typ          string
		durationMin  pgtype.Int4
		scheduledAt  pgtype.Timestamptz
	)

	err := s.Scan(&id, &stopID, &attractionID, &a.Name, &typ, &a.Cost,
		&durationMin, &scheduledAt, &a.Notes, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.StopID = uuid.UUID(stopID.Bytes)
	a.Type = domain.ActivityType(typ)
	if attractionID.Valid {
		aid := uuid.UUID(attractionID.Bytes)
		a.AttractionID = &aid
	}
	if durationMin.Valid {
		d := int(durationMin.Int32)
		a.DurationMin = &d
	}
	if scheduledAt.Valid {
		ts := scheduledAt.Time
		a.ScheduledAt = &ts
	}

	return a, nil
}
