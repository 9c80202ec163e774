// Package catalog exposes read-only city and attraction data to the engine.
// Catalog CRUD lives elsewhere; this package only looks records up, and the
// cost estimator resolves cost indexes through it at estimate time rather
// than caching them on stops.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mheller/wayfarer/internal/domain"
)

// Reader is the lookup interface the services depend on.
type Reader interface {
	// GetCity returns a city by ID. Returns domain.ErrNotFound if no city
	// with that ID exists. A cost index of 0 is valid data, not an error.
	GetCity(ctx context.Context, id uuid.UUID) (domain.City, error)

	// GetAttraction returns an attraction by ID.
	// Returns domain.ErrNotFound if no attraction with that ID exists.
	GetAttraction(ctx context.Context, id uuid.UUID) (domain.Attraction, error)
}

// db is the minimal query interface satisfied by *pgxpool.Pool and pgx.Tx.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgReader is the Postgres implementation of Reader.
type pgReader struct {
	db db
}

// NewPGReader constructs a Reader over the cities and attractions tables.
func NewPGReader(db db) Reader {
	return &pgReader{db: db}
}

func (r *pgReader) GetCity(ctx context.Context, id uuid.UUID) (domain.City, error) {
	const q = `
		SELECT id, name, country, cost_index
		FROM cities
		WHERE id = @id`

	var (
		c     domain.City
		rawID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).
		Scan(&rawID, &c.Name, &c.Country, &c.CostIndex)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.City{}, fmt.Errorf("catalog.Reader.GetCity: %w", domain.ErrNotFound)
		}
		return domain.City{}, fmt.Errorf("catalog.Reader.GetCity: %w", err)
	}
	c.ID = uuid.UUID(rawID.Bytes)
	return c, nil
}

func (r *pgReader) GetAttraction(ctx context.Context, id uuid.UUID) (domain.Attraction, error) {
	const q = `
		SELECT id, city_id, name, cost, type
		FROM attractions
		WHERE id = @id`

	var (
		a      domain.Attraction
		rawID  pgtype.UUID
		cityID pgtype.UUID
		typ    string
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).
		Scan(&rawID, &cityID, &a.Name, &a.Cost, &typ)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attraction{}, fmt.Errorf("catalog.Reader.GetAttraction: %w", domain.ErrNotFound)
		}
		return domain.Attraction{}, fmt.Errorf("catalog.Reader.GetAttraction: %w", err)
	}
	a.ID = uuid.UUID(rawID.Bytes)
	a.CityID = uuid.UUID(cityID.Bytes)
	a.Type = domain.ActivityType(typ)
	return a, nil
}
