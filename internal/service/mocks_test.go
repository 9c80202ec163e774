package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/catalog"
	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
	"github.com/mheller/wayfarer/internal/service"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset method
// panics, which surfaces unexpected calls immediately.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	update      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	listByTrip     func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	replaceForTrip func(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error)
}

func (m *mockStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockStopRepo) ReplaceForTrip(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
	return m.replaceForTrip(ctx, tripID, stops)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockExpenseRepo struct {
	create     func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	delete     func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}
func (m *mockExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

type mockShareRepo struct {
	create         func(ctx context.Context, share domain.SharedTrip) (domain.SharedTrip, error)
	getByTripID    func(ctx context.Context, tripID uuid.UUID) (domain.SharedTrip, error)
	getByShareID   func(ctx context.Context, shareID string) (domain.SharedTrip, error)
	updateFlags    func(ctx context.Context, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error)
	deleteByTripID func(ctx context.Context, tripID uuid.UUID) error
}

func (m *mockShareRepo) Create(ctx context.Context, share domain.SharedTrip) (domain.SharedTrip, error) {
	return m.create(ctx, share)
}
func (m *mockShareRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.SharedTrip, error) {
	return m.getByTripID(ctx, tripID)
}
func (m *mockShareRepo) GetByShareID(ctx context.Context, shareID string) (domain.SharedTrip, error) {
	return m.getByShareID(ctx, shareID)
}
func (m *mockShareRepo) UpdateFlags(ctx context.Context, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error) {
	return m.updateFlags(ctx, tripID, isPublic, canCopy)
}
func (m *mockShareRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	return m.deleteByTripID(ctx, tripID)
}

var _ repo.ShareRepo = (*mockShareRepo)(nil)

type mockCloneRepo struct {
	insertTripGraph func(ctx context.Context, trip domain.Trip, stops []domain.Stop, expenses []domain.Expense) (domain.Trip, error)
}

func (m *mockCloneRepo) InsertTripGraph(ctx context.Context, trip domain.Trip, stops []domain.Stop, expenses []domain.Expense) (domain.Trip, error) {
	return m.insertTripGraph(ctx, trip, stops, expenses)
}

var _ repo.CloneRepo = (*mockCloneRepo)(nil)

// mockAudit collects recorded facts for assertion. A nil error is returned
// unless err is set.
type mockAudit struct {
	facts []domain.AuditFact
	err   error
}

func (m *mockAudit) Record(_ context.Context, fact domain.AuditFact) error {
	m.facts = append(m.facts, fact)
	return m.err
}

var _ service.AuditRecorder = (*mockAudit)(nil)

// mockCatalog serves city and attraction lookups from in-memory maps.
type mockCatalog struct {
	cities      map[uuid.UUID]domain.City
	attractions map[uuid.UUID]domain.Attraction
}

func (m *mockCatalog) GetCity(_ context.Context, id uuid.UUID) (domain.City, error) {
	c, ok := m.cities[id]
	if !ok {
		return domain.City{}, fmt.Errorf("catalog.Reader.GetCity: %w", domain.ErrNotFound)
	}
	return c, nil
}
func (m *mockCatalog) GetAttraction(_ context.Context, id uuid.UUID) (domain.Attraction, error) {
	a, ok := m.attractions[id]
	if !ok {
		return domain.Attraction{}, fmt.Errorf("catalog.Reader.GetAttraction: %w", domain.ErrNotFound)
	}
	return a, nil
}

var _ catalog.Reader = (*mockCatalog)(nil)

// ---- shared fixtures --------------------------------------------------------

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validTrip returns an unlocked planning trip spanning June 1–15 owned by
// the given actor.
func validTrip(ownerID uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "Summer in Europe",
		StartDate: day(2026, 6, 1),
		EndDate:   day(2026, 6, 15),
		Status:    domain.TripStatusPlanning,
	}
}

// tripRepoReturning wires getByID to return the given trip for its ID.
func tripRepoReturning(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
}
