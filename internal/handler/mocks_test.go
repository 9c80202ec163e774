package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/handler"
	"github.com/mheller/wayfarer/internal/middleware"
	"github.com/mheller/wayfarer/internal/service"
)

// Test doubles for the servicer interfaces. Each method is a function
// field — set only the ones your test needs.

type mockTripServicer struct {
	create      func(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Trip, error)
	listByOwner func(ctx context.Context, actor domain.Actor, ownerID uuid.UUID) ([]domain.Trip, error)
	update      func(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, actor, trip)
}
func (m *mockTripServicer) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, actor, id)
}
func (m *mockTripServicer) ListByOwner(ctx context.Context, actor domain.Actor, ownerID uuid.UUID) ([]domain.Trip, error) {
	return m.listByOwner(ctx, actor, ownerID)
}
func (m *mockTripServicer) Update(ctx context.Context, actor domain.Actor, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, actor, trip)
}
func (m *mockTripServicer) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	return m.delete(ctx, actor, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockItineraryServicer struct {
	get     func(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Stop, error)
	replace func(ctx context.Context, actor domain.Actor, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error)
}

func (m *mockItineraryServicer) Get(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.get(ctx, actor, tripID)
}
func (m *mockItineraryServicer) Replace(ctx context.Context, actor domain.Actor, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
	return m.replace(ctx, actor, tripID, stops)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

type mockBudgetServicer struct {
	budget func(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.BudgetView, error)
}

func (m *mockBudgetServicer) Budget(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.BudgetView, error) {
	return m.budget(ctx, actor, tripID)
}

var _ handler.BudgetServicer = (*mockBudgetServicer)(nil)

type mockExpenseServicer struct {
	add        func(ctx context.Context, actor domain.Actor, tripID uuid.UUID, expense domain.Expense) (domain.Expense, error)
	listByTrip func(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Expense, error)
	delete     func(ctx context.Context, actor domain.Actor, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseServicer) Add(ctx context.Context, actor domain.Actor, tripID uuid.UUID, expense domain.Expense) (domain.Expense, error) {
	return m.add(ctx, actor, tripID, expense)
}
func (m *mockExpenseServicer) ListByTrip(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTrip(ctx, actor, tripID)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, actor domain.Actor, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, actor, tripID, expenseID)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockShareServicer struct {
	create      func(ctx context.Context, actor domain.Actor, tripID uuid.UUID, params service.ShareParams) (domain.SharedTrip, error)
	update      func(ctx context.Context, actor domain.Actor, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error)
	getByTripID func(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.SharedTrip, error)
	revoke      func(ctx context.Context, actor domain.Actor, tripID uuid.UUID) error
	resolve     func(ctx context.Context, shareID string) (domain.SharedTripView, error)
}

func (m *mockShareServicer) Create(ctx context.Context, actor domain.Actor, tripID uuid.UUID, params service.ShareParams) (domain.SharedTrip, error) {
	return m.create(ctx, actor, tripID, params)
}
func (m *mockShareServicer) Update(ctx context.Context, actor domain.Actor, tripID uuid.UUID, isPublic, canCopy bool) (domain.SharedTrip, error) {
	return m.update(ctx, actor, tripID, isPublic, canCopy)
}
func (m *mockShareServicer) GetByTripID(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.SharedTrip, error) {
	return m.getByTripID(ctx, actor, tripID)
}
func (m *mockShareServicer) Revoke(ctx context.Context, actor domain.Actor, tripID uuid.UUID) error {
	return m.revoke(ctx, actor, tripID)
}
func (m *mockShareServicer) Resolve(ctx context.Context, shareID string) (domain.SharedTripView, error) {
	return m.resolve(ctx, shareID)
}

var _ handler.ShareServicer = (*mockShareServicer)(nil)

type mockCloneServicer struct {
	duplicateTemplate func(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.Trip, error)
	copyFromShare     func(ctx context.Context, actor domain.Actor, shareID string) (domain.Trip, error)
}

func (m *mockCloneServicer) DuplicateTemplate(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.Trip, error) {
	return m.duplicateTemplate(ctx, actor, tripID)
}
func (m *mockCloneServicer) CopyFromShare(ctx context.Context, actor domain.Actor, shareID string) (domain.Trip, error) {
	return m.copyFromShare(ctx, actor, shareID)
}

var _ handler.CloneServicer = (*mockCloneServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverMocks bundles one mock per servicer so tests can set just the
// methods they exercise and leave the rest panicking-on-call.
type serverMocks struct {
	trips     *mockTripServicer
	itinerary *mockItineraryServicer
	budget    *mockBudgetServicer
	expenses  *mockExpenseServicer
	shares    *mockShareServicer
	clones    *mockCloneServicer
}

func newServerMocks() *serverMocks {
	return &serverMocks{
		trips:     &mockTripServicer{},
		itinerary: &mockItineraryServicer{},
		budget:    &mockBudgetServicer{},
		expenses:  &mockExpenseServicer{},
		shares:    &mockShareServicer{},
		clones:    &mockCloneServicer{},
	}
}

// handler wires the mocks into the real router, actor middleware included —
// the same surface main.go mounts in production.
func (m *serverMocks) handler() http.Handler {
	return handler.NewServer(m.trips, m.itinerary, m.budget, m.expenses, m.shares, m.clones).Routes()
}

// doRequest performs a request as the given actor and returns the recorder.
// A zero actor ID sends no identity headers (anonymous request).
func doRequest(t *testing.T, h http.Handler, method, target string, actor domain.Actor, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor.ID != uuid.Nil {
		req.Header.Set(middleware.ActorIDHeader, actor.ID.String())
		if actor.IsAdmin {
			req.Header.Set(middleware.ActorAdminHeader, "true")
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded response body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

// errorCode extracts error.code from a non-2xx response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, rec, &resp)
	return resp.Error.Code
}

func tripFixture(ownerID uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "Summer in Europe",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.TripStatusPlanning,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}
