package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mheller/wayfarer/internal/domain"
)

// CloneRepo persists a fully assembled clone graph. The service layer builds
// the copied trip, stops, activities, and expenses in memory; this repo's
// only job is to land all of it in one transaction. Any per-row failure
// aborts the entire clone — no partial trip is ever left behind.
type CloneRepo interface {
	// InsertTripGraph inserts the trip, then its stops with nested
	// activities, then its expenses, all within a single transaction.
	// Returns the persisted trip with DB-generated fields populated.
	InsertTripGraph(ctx context.Context, trip domain.Trip, stops []domain.Stop, expenses []domain.Expense) (domain.Trip, error)
}

// pgCloneRepo is the Postgres implementation of CloneRepo.
type pgCloneRepo struct {
	db txdb
}

// NewCloneRepo constructs a CloneRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx — the insert
// transaction then nests as a savepoint.
func NewCloneRepo(db txdb) CloneRepo {
	return &pgCloneRepo{db: db}
}

func (r *pgCloneRepo) InsertTripGraph(ctx context.Context, trip domain.Trip, stops []domain.Stop, expenses []domain.Expense) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.CloneRepo.InsertTripGraph: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	const q = `
		INSERT INTO trips (owner_id, name, description, start_date, end_date,
		                   status, cover_image, is_locked, admin_notes)
		VALUES (@owner_id, @name, @description, @start_date, @end_date,
		        @status, @cover_image, @is_locked, @admin_notes)
		RETURNING ` + tripColumns

	row := tx.QueryRow(ctx, q, tripArgs(trip))
	created, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.CloneRepo.InsertTripGraph: trip: %w", err)
	}

	for i, stop := range stops {
		if _, err := insertStop(ctx, tx, created.ID, stop); err != nil {
			return domain.Trip{}, fmt.Errorf("repo.CloneRepo.InsertTripGraph: stop %d: %w", i, err)
		}
	}

	const eq = `
		INSERT INTO expenses (trip_id, category, amount, currency, description, spent_on)
		VALUES (@trip_id, @category, @amount, @currency, @description, @spent_on)`

	for i, e := range expenses {
		_, err := tx.Exec(ctx, eq, pgx.NamedArgs{
			"trip_id":     created.ID,
			"category":    string(e.Category),
			"amount":      e.Amount,
			"currency":    e.Currency,
			"description": e.Description,
			"spent_on":    e.Date,
		})
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.CloneRepo.InsertTripGraph: expense %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.CloneRepo.InsertTripGraph: commit: %w", err)
	}
	return created, nil
}
