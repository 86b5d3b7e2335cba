//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"storent/internal/domain/status"
	"storent/internal/pkg/clock"
	"storent/internal/usecase/commands"
	"storent/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("marks lapsed rentals and revokes stale grants", func(t *testing.T) {
		store := newFakeStore()
		cache := newFakeCache()
		clk := clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
		uc := commands.NewAccessUseCase(newFakeUoW(store), cache, clk)

		expiring := store.seedStatus(builder.NewStatusBuilder().WithName("Expiring").WithKind(status.KindExpiring).BuildSnapshot())
		now := clk.Now()

		lapsed := builder.NewRentalBuilder().
			WithPeriod(now.AddDate(0, -2, 0), now.AddDate(0, 0, -1)).
			BuildSnapshot()
		store.seedRental(lapsed)

		current := builder.NewRentalBuilder().
			WithPeriod(now.AddDate(0, 0, -5), now.AddDate(0, 0, 25)).
			BuildSnapshot()
		store.seedRental(current)

		staleKey := grantKey{relayID: uuid.New(), rentalID: lapsed.ID}
		store.grants[staleKey] = &fakeGrant{active: true, validUntil: lapsed.EndDate}
		freshKey := grantKey{relayID: uuid.New(), rentalID: current.ID}
		store.grants[freshKey] = &fakeGrant{active: true, validUntil: current.EndDate}

		result, err := uc.SweepExpired(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, result.RentalsMarked)
		assert.Equal(t, int64(1), result.GrantsRevoked)
		assert.Equal(t, status.KindExpiring, store.rentals[lapsed.ID].Kind)
		assert.Equal(t, expiring.ID, store.rentals[lapsed.ID].StatusID)
		assert.Equal(t, status.KindActive, store.rentals[current.ID].Kind)
		assert.False(t, store.grants[staleKey].active)
		assert.True(t, store.grants[freshKey].active)
	})

	t.Run("missing expiring status aborts the sweep", func(t *testing.T) {
		store := newFakeStore()
		uc := commands.NewAccessUseCase(newFakeUoW(store), newFakeCache(), clock.NewMockClock(time.Now()))

		_, err := uc.SweepExpired(ctx)
		assert.Error(t, err)
	})
}

func TestRecomputeForRental(t *testing.T) {
	ctx := context.Background()

	t.Run("active rental regains grants", func(t *testing.T) {
		store := newFakeStore()
		cache := newFakeCache()
		clk := clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
		uc := commands.NewAccessUseCase(newFakeUoW(store), cache, clk)

		cellID := uuid.New()
		relay := store.seedRelay(cellID)
		now := clk.Now()
		snap := builder.NewRentalBuilder().
			WithCellIDs(cellID).
			WithPeriod(now.AddDate(0, 0, -1), now.AddDate(0, 1, 0)).
			BuildSnapshot()
		store.seedRental(snap)

		require.NoError(t, uc.RecomputeForRental(ctx, snap.ID))

		grant := store.grantFor(relay.ID, snap.ID)
		require.NotNil(t, grant)
		assert.True(t, grant.active)
		assert.Equal(t, snap.EndDate, grant.validUntil)
		assert.Contains(t, cache.forgotten[snap.ID], relay.ID)
	})

	t.Run("unknown rental", func(t *testing.T) {
		store := newFakeStore()
		uc := commands.NewAccessUseCase(newFakeUoW(store), newFakeCache(), clock.NewMockClock(time.Now()))

		err := uc.RecomputeForRental(ctx, uuid.New())
		assert.ErrorIs(t, err, commands.ErrRentalNotFound)
	})
}
