//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"storent/internal/infra"
	"storent/internal/pkg/clock"
	"storent/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccessStore struct {
	grants map[[2]uuid.UUID]*queries.AccessGrantView
	calls  int
}

func (s *stubAccessStore) FindGrant(_ context.Context, relayID, rentalID uuid.UUID) (*queries.AccessGrantView, error) {
	s.calls++
	if g, ok := s.grants[[2]uuid.UUID{relayID, rentalID}]; ok {
		return g, nil
	}
	return nil, infra.WrapRepoErr(infra.NotFound, "not found", nil)
}

func (s *stubAccessStore) FindByRental(context.Context, uuid.UUID) ([]*queries.AccessGrantView, error) {
	return nil, nil
}

func (s *stubAccessStore) FindByRelay(context.Context, uuid.UUID) ([]*queries.AccessGrantView, error) {
	return nil, nil
}

type recordingCache struct {
	entries map[[2]uuid.UUID]bool
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[[2]uuid.UUID]bool)}
}

func (c *recordingCache) Get(_ context.Context, relayID, rentalID uuid.UUID) (bool, bool) {
	allowed, ok := c.entries[[2]uuid.UUID{relayID, rentalID}]
	return allowed, ok
}

func (c *recordingCache) Set(_ context.Context, relayID, rentalID uuid.UUID, allowed bool) {
	c.entries[[2]uuid.UUID{relayID, rentalID}] = allowed
}

func (c *recordingCache) Forget(_ context.Context, rentalID uuid.UUID, relayIDs []uuid.UUID) {
	for _, relayID := range relayIDs {
		delete(c.entries, [2]uuid.UUID{relayID, rentalID})
	}
}

func TestAccessCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	newFixture := func() (*stubAccessStore, *recordingCache, queries.AccessQueries) {
		store := &stubAccessStore{grants: make(map[[2]uuid.UUID]*queries.AccessGrantView)}
		cache := newRecordingCache()
		q := queries.NewAccessQueries(store, cache, clock.NewMockClock(now))
		return store, cache, q
	}

	t.Run("active grant inside validity allows", func(t *testing.T) {
		store, cache, q := newFixture()
		relayID, rentalID := uuid.New(), uuid.New()
		store.grants[[2]uuid.UUID{relayID, rentalID}] = &queries.AccessGrantView{
			RelayID: relayID, RentalID: rentalID, Active: true, ValidUntil: now.Add(time.Hour),
		}

		allowed, err := q.Check(ctx, relayID, rentalID)
		require.NoError(t, err)
		assert.True(t, allowed)

		cached, ok := cache.entries[[2]uuid.UUID{relayID, rentalID}]
		require.True(t, ok, "decision is cached")
		assert.True(t, cached)
	})

	t.Run("revoked grant denies", func(t *testing.T) {
		store, _, q := newFixture()
		relayID, rentalID := uuid.New(), uuid.New()
		store.grants[[2]uuid.UUID{relayID, rentalID}] = &queries.AccessGrantView{
			RelayID: relayID, RentalID: rentalID, Active: false, ValidUntil: now.Add(time.Hour),
		}

		allowed, err := q.Check(ctx, relayID, rentalID)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("validity boundary is exclusive", func(t *testing.T) {
		store, _, q := newFixture()
		relayID, rentalID := uuid.New(), uuid.New()
		store.grants[[2]uuid.UUID{relayID, rentalID}] = &queries.AccessGrantView{
			RelayID: relayID, RentalID: rentalID, Active: true, ValidUntil: now,
		}

		allowed, err := q.Check(ctx, relayID, rentalID)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("missing grant denies and caches the denial", func(t *testing.T) {
		_, cache, q := newFixture()
		relayID, rentalID := uuid.New(), uuid.New()

		allowed, err := q.Check(ctx, relayID, rentalID)
		require.NoError(t, err)
		assert.False(t, allowed)

		cached, ok := cache.entries[[2]uuid.UUID{relayID, rentalID}]
		require.True(t, ok)
		assert.False(t, cached)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		store, cache, q := newFixture()
		relayID, rentalID := uuid.New(), uuid.New()
		cache.Set(ctx, relayID, rentalID, true)

		allowed, err := q.Check(ctx, relayID, rentalID)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, store.calls)
	})
}
