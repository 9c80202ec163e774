package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mheller/wayfarer/internal/domain"
)

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	fixture := tripFixture(actor.ID)

	m := newServerMocks()
	m.trips.create = func(_ context.Context, a domain.Actor, trip domain.Trip) (domain.Trip, error) {
		assert.Equal(t, actor.ID, a.ID)
		assert.Equal(t, "Summer in Europe", trip.Name)
		return fixture, nil
	}

	rec := doRequest(t, m.handler(), http.MethodPost, "/trips", actor, map[string]any{
		"name":      "Summer in Europe",
		"startDate": "2026-06-01",
		"endDate":   "2026-06-15",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.Name, resp.Name)
}

func TestCreateTrip_400_ValidationError(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.trips.create = func(_ context.Context, _ domain.Actor, _ domain.Trip) (domain.Trip, error) {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	rec := doRequest(t, m.handler(), http.MethodPost, "/trips", actor, map[string]any{
		"name":      "",
		"startDate": "2026-06-01",
		"endDate":   "2026-06-15",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestCreateTrip_400_UnknownField(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()

	rec := doRequest(t, m.handler(), http.MethodPost, "/trips", actor, map[string]any{
		"name":      "Trip",
		"startDate": "2026-06-01",
		"endDate":   "2026-06-15",
		"bogus":     true,
	})

	// Unknown fields are rejected at the decoding boundary.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_400_MissingBody(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}

	rec := doRequest(t, newServerMocks().handler(), http.MethodPost, "/trips", actor, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_401_NoActor(t *testing.T) {
	rec := doRequest(t, newServerMocks().handler(), http.MethodPost, "/trips", domain.Actor{}, map[string]any{
		"name": "Trip",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.trips.listByOwner = func(_ context.Context, _ domain.Actor, ownerID uuid.UUID) ([]domain.Trip, error) {
		assert.Equal(t, actor.ID, ownerID)
		return []domain.Trip{tripFixture(actor.ID), tripFixture(actor.ID)}, nil
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips", actor, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	decodeBody(t, rec, &resp)
	assert.Len(t, resp, 2)
}

func TestListTrips_OwnerQueryForAdmin(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), IsAdmin: true}
	other := uuid.New()

	m := newServerMocks()
	m.trips.listByOwner = func(_ context.Context, _ domain.Actor, ownerID uuid.UUID) ([]domain.Trip, error) {
		assert.Equal(t, other, ownerID)
		return []domain.Trip{}, nil
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips?owner="+other.String(), admin, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTrips_400_BadOwnerQuery(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}

	rec := doRequest(t, newServerMocks().handler(), http.MethodGet, "/trips?owner=nope", actor, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /trips/{tripID} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	fixture := tripFixture(actor.ID)

	m := newServerMocks()
	m.trips.getByID = func(_ context.Context, _ domain.Actor, id uuid.UUID) (domain.Trip, error) {
		assert.Equal(t, fixture.ID, id)
		return fixture, nil
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+fixture.ID.String(), actor, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_404(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.trips.getByID = func(_ context.Context, _ domain.Actor, _ uuid.UUID) (domain.Trip, error) {
		return domain.Trip{}, domain.ErrNotFound
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+uuid.NewString(), actor, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestGetTrip_403_Forbidden(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.trips.getByID = func(_ context.Context, _ domain.Actor, _ uuid.UUID) (domain.Trip, error) {
		return domain.Trip{}, domain.ErrForbidden
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+uuid.NewString(), actor, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))
}

func TestGetTrip_400_BadID(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}

	rec := doRequest(t, newServerMocks().handler(), http.MethodGet, "/trips/not-a-uuid", actor, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrip_AdminNotesHiddenFromNonAdmins(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	fixture := tripFixture(actor.ID)
	fixture.AdminNotes = "secret"

	m := newServerMocks()
	m.trips.getByID = func(_ context.Context, _ domain.Actor, _ uuid.UUID) (domain.Trip, error) {
		return fixture, nil
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+fixture.ID.String(), actor, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	decodeBody(t, rec, &resp)
	assert.NotContains(t, resp, "adminNotes")
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestGetTrip_AdminNotesVisibleToAdmins(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), IsAdmin: true}
	fixture := tripFixture(uuid.New())
	fixture.AdminNotes = "flagged for review"

	m := newServerMocks()
	m.trips.getByID = func(_ context.Context, _ domain.Actor, _ uuid.UUID) (domain.Trip, error) {
		return fixture, nil
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+fixture.ID.String(), admin, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AdminNotes *string `json:"adminNotes"`
	}
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.AdminNotes)
	assert.Equal(t, "flagged for review", *resp.AdminNotes)
}

// ---- PUT /trips/{tripID} ---------------------------------------------------

func TestUpdateTrip_200(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	fixture := tripFixture(actor.ID)

	m := newServerMocks()
	m.trips.update = func(_ context.Context, _ domain.Actor, trip domain.Trip) (domain.Trip, error) {
		// The URL wins over anything in the body.
		assert.Equal(t, fixture.ID, trip.ID)
		fixture.Name = trip.Name
		return fixture, nil
	}

	rec := doRequest(t, m.handler(), http.MethodPut, "/trips/"+fixture.ID.String(), actor, map[string]any{
		"name":      "Renamed",
		"startDate": "2026-06-01",
		"endDate":   "2026-06-15",
		"status":    "upcoming",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTrip_403_Locked(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.trips.update = func(_ context.Context, _ domain.Actor, _ domain.Trip) (domain.Trip, error) {
		return domain.Trip{}, domain.ErrLocked
	}

	rec := doRequest(t, m.handler(), http.MethodPut, "/trips/"+uuid.NewString(), actor, map[string]any{
		"name":      "Renamed",
		"startDate": "2026-06-01",
		"endDate":   "2026-06-15",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	// A locked trip reports its own code so the UI can explain the refusal.
	assert.Equal(t, "trip_locked", errorCode(t, rec))
}

// ---- DELETE /trips/{tripID} ------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	tripID := uuid.New()

	m := newServerMocks()
	m.trips.delete = func(_ context.Context, _ domain.Actor, id uuid.UUID) error {
		assert.Equal(t, tripID, id)
		return nil
	}

	rec := doRequest(t, m.handler(), http.MethodDelete, "/trips/"+tripID.String(), actor, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.trips.delete = func(_ context.Context, _ domain.Actor, _ uuid.UUID) error {
		return domain.ErrNotFound
	}

	rec := doRequest(t, m.handler(), http.MethodDelete, "/trips/"+uuid.NewString(), actor, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
