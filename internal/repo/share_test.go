package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
)

func shareFixture(tripID uuid.UUID, token string) domain.SharedTrip {
	return domain.SharedTrip{
		TripID:   tripID,
		ShareID:  token,
		IsPublic: true,
		CanCopy:  true,
	}
}

func TestShareRepo_Create_RoundTrip(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewShareRepo(tx)

	trip := seedTrip(t, tx)
	expires := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	in := shareFixture(trip.ID, "4AkP9mXcTTKYcd2PP8NVbQ")
	in.ExpiresAt = &expires

	created, err := r.Create(ctx, in)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, trip.ID, created.TripID)
	assert.Equal(t, "4AkP9mXcTTKYcd2PP8NVbQ", created.ShareID)
	assert.True(t, created.IsPublic)
	assert.True(t, created.CanCopy)
	require.NotNil(t, created.ExpiresAt)
	assert.True(t, created.ExpiresAt.Equal(expires))

	got, err := r.GetByShareID(ctx, "4AkP9mXcTTKYcd2PP8NVbQ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestShareRepo_Create_SecondLinkForTrip_Conflict(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewShareRepo(tx)

	trip := seedTrip(t, tx)
	_, err := r.Create(ctx, shareFixture(trip.ID, "tokenA"))
	require.NoError(t, err)

	_, err = r.Create(ctx, shareFixture(trip.ID, "tokenB"))

	assert.ErrorIs(t, err, domain.ErrConflict, "one share link per trip")
}

func TestShareRepo_Create_TokenCollision_ShareIDTaken(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewShareRepo(tx)

	tripA := seedTrip(t, tx)
	tripB := seedTrip(t, tx)

	_, err := r.Create(ctx, shareFixture(tripA.ID, "sametoken"))
	require.NoError(t, err)

	_, err = r.Create(ctx, shareFixture(tripB.ID, "sametoken"))

	assert.ErrorIs(t, err, repo.ErrShareIDTaken)
}

func TestShareRepo_GetByTripID_NotFound(t *testing.T) {
	r := repo.NewShareRepo(newTestTx(t))

	_, err := r.GetByTripID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareRepo_GetByShareID_NotFound(t *testing.T) {
	r := repo.NewShareRepo(newTestTx(t))

	_, err := r.GetByShareID(context.Background(), "no-such-token")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareRepo_UpdateFlags(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewShareRepo(tx)

	trip := seedTrip(t, tx)
	created, err := r.Create(ctx, shareFixture(trip.ID, "flagtoken"))
	require.NoError(t, err)

	updated, err := r.UpdateFlags(ctx, trip.ID, false, false)

	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
	assert.False(t, updated.CanCopy)
	assert.Equal(t, created.ShareID, updated.ShareID, "token must never change")
}

func TestShareRepo_UpdateFlags_NotFound(t *testing.T) {
	r := repo.NewShareRepo(newTestTx(t))

	_, err := r.UpdateFlags(context.Background(), uuid.New(), true, true)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareRepo_DeleteByTripID(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewShareRepo(tx)

	trip := seedTrip(t, tx)
	_, err := r.Create(ctx, shareFixture(trip.ID, "revoked"))
	require.NoError(t, err)

	require.NoError(t, r.DeleteByTripID(ctx, trip.ID))

	_, err = r.GetByShareID(ctx, "revoked")
	assert.ErrorIs(t, err, domain.ErrNotFound, "token should be dead after revoke")
}

func TestShareRepo_DeleteByTripID_NotFound(t *testing.T) {
	r := repo.NewShareRepo(newTestTx(t))

	err := r.DeleteByTripID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareRepo_TripDelete_CascadesShareLink(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	shares := repo.NewShareRepo(tx)
	trips := repo.NewTripRepo(tx)

	trip := seedTrip(t, tx)
	_, err := shares.Create(ctx, shareFixture(trip.ID, "cascaded"))
	require.NoError(t, err)

	require.NoError(t, trips.Delete(ctx, trip.ID))

	_, err = shares.GetByShareID(ctx, "cascaded")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
