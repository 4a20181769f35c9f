package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyguide/internal/domain"
	"skyguide/internal/repository"
	"skyguide/internal/repository/memory"
)

func newObservationFixture(t *testing.T) (*repository.Store, ObservationService) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, Seed(context.Background(), store))
	return store, NewObservationService(store)
}

func TestCreateObservationRequiresObject(t *testing.T) {
	_, svc := newObservationFixture(t)

	_, err := svc.Create(context.Background(), 1, domain.Observation{ObjectID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(context.Background(), 1, domain.Observation{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestObservationPatchLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	_, svc := newObservationFixture(t)

	obs, err := svc.Create(ctx, 1, domain.Observation{ObjectID: 1, ObservationNotes: "first look", PlannedDate: "2025-04-12"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), obs.UserID)
	assert.False(t, obs.DateAdded.IsZero())

	observed := true
	updated, err := svc.Update(ctx, 1, obs.ID, domain.ObservationPatch{IsObserved: &observed})
	require.NoError(t, err)
	assert.True(t, updated.IsObserved)
	assert.Equal(t, "first look", updated.ObservationNotes)
	assert.Equal(t, "2025-04-12", updated.PlannedDate)
	assert.Equal(t, obs.DateAdded, updated.DateAdded)
}

func TestObservationOwnership(t *testing.T) {
	ctx := context.Background()
	_, svc := newObservationFixture(t)

	obs, err := svc.Create(ctx, 2, domain.Observation{ObjectID: 3})
	require.NoError(t, err)

	notes := "mine now"
	_, err = svc.Update(ctx, 1, obs.ID, domain.ObservationPatch{ObservationNotes: &notes})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(ctx, 1, obs.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(ctx, 1, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 2, obs.ID))
	views, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListJoinsObjects(t *testing.T) {
	ctx := context.Background()
	store, svc := newObservationFixture(t)

	_, err := svc.Create(ctx, 1, domain.Observation{ObjectID: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, domain.Observation{ObjectID: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 7, domain.Observation{ObjectID: 5})
	require.NoError(t, err)

	_, err = store.Objects.Delete(ctx, 5)
	require.NoError(t, err)

	views, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].Object)
	assert.Equal(t, "Saturn", views[0].Object.Name)
	assert.Nil(t, views[1].Object)
}
