//go:build unit

package rental_test

import (
	"testing"
	"time"

	"storent/internal/domain/rental"
	"storent/internal/domain/status"
	"storent/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRental(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewRentalBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Len(t, actual.CellIDs(), 1)
		assert.Equal(t, status.KindActive, actual.Kind())
		assert.Zero(t, actual.ExtensionCount())
		assert.Nil(t, actual.ClosedAt())
	})

	t.Run("cell list validation", func(t *testing.T) {
		_, err := builder.NewRentalBuilder().WithCellIDs().BuildDomain()
		assert.ErrorIs(t, err, rental.ErrNoCells)

		_, err = builder.NewRentalBuilder().WithCellIDs(uuid.Nil).BuildDomain()
		assert.ErrorIs(t, err, rental.ErrNoCells, "nil ids are dropped")
	})

	t.Run("duplicate cells collapse", func(t *testing.T) {
		cellID := uuid.New()
		actual, err := builder.NewRentalBuilder().WithCellIDs(cellID, cellID, cellID).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{cellID}, actual.CellIDs())
	})

	t.Run("cannot be born closed", func(t *testing.T) {
		_, err := builder.NewRentalBuilder().AsClosed().BuildDomain()
		assert.ErrorIs(t, err, rental.ErrCloseViaTransition)
	})

	t.Run("reconstruct rebuilds the exact state", func(t *testing.T) {
		created, err := builder.NewRentalBuilder().BuildDomain()
		require.NoError(t, err)

		rebuilt := rental.ReconstructRental(
			created.ID(), created.ClientID(),
			created.CellIDs(),
			created.Period(),
			created.StatusID(),
			created.Kind(),
			created.ExtensionCount(),
			created.LastExtendedAt(), created.ClosedAt(),
			created.CloseComment(),
			created.CreatedAt(), created.UpdatedAt(),
		)

		opts := cmp.AllowUnexported(rental.Rental{}, rental.Period{})
		if diff := cmp.Diff(created, rebuilt, opts); diff != "" {
			t.Errorf("Rental mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRentalIsActive(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	cases := []struct {
		name   string
		kind   status.Kind
		at     time.Time
		active bool
	}{
		{"active kind inside window", status.KindActive, start.AddDate(0, 0, 10), true},
		{"waiting kind inside window", status.KindWaiting, start.AddDate(0, 0, 10), true},
		{"before window", status.KindActive, start.Add(-time.Hour), false},
		{"at end of window", status.KindActive, end, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := builder.NewRentalBuilder().WithKind(c.kind).WithPeriod(start, end).BuildDomain()
			require.NoError(t, err)
			assert.Equal(t, c.active, r.IsActive(c.at))
		})
	}
}

func TestRentalExtend(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	now := start.AddDate(0, 0, 15)

	t.Run("days push the end forward", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().WithPeriod(start, end).BuildDomain()
		require.NoError(t, err)

		amount, err := rental.DaysAmount(10)
		require.NoError(t, err)
		require.NoError(t, r.Extend(amount, now))

		assert.Equal(t, end.AddDate(0, 0, 10), r.Period().End())
		assert.Equal(t, start, r.Period().Start(), "start never moves")
		assert.Equal(t, 1, r.ExtensionCount())
		require.NotNil(t, r.LastExtendedAt())
		assert.Equal(t, now, *r.LastExtendedAt())
	})

	t.Run("extensions accumulate", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().WithPeriod(start, end).BuildDomain()
		require.NoError(t, err)

		months, _ := rental.MonthsAmount(1)
		days, _ := rental.DaysAmount(7)
		require.NoError(t, r.Extend(months, now))
		require.NoError(t, r.Extend(days, now))

		assert.Equal(t, end.AddDate(0, 1, 7), r.Period().End())
		assert.Equal(t, 2, r.ExtensionCount())
	})

	t.Run("closed rental cannot extend", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().WithPeriod(start, end).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, r.Close("tenant moved out", uuid.New(), now))

		amount, _ := rental.DaysAmount(10)
		assert.ErrorIs(t, r.Extend(amount, now), rental.ErrRentalClosed)
	})
}

func TestRentalChangeStatus(t *testing.T) {
	now := time.Now()

	t.Run("allowed edges", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().AsWaiting().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, r.ChangeStatus(status.KindActive, uuid.New(), now))
		assert.Equal(t, status.KindActive, r.Kind())

		require.NoError(t, r.ChangeStatus(status.KindExpiring, uuid.New(), now))
		assert.Equal(t, status.KindExpiring, r.Kind())
	})

	t.Run("skipping a stage is rejected", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().AsWaiting().BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, r.ChangeStatus(status.KindExpiring, uuid.New(), now), rental.ErrInvalidTransition)
	})

	t.Run("closing must go through Close", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, r.ChangeStatus(status.KindClosed, uuid.New(), now), rental.ErrCloseViaTransition)
	})
}

func TestRentalClose(t *testing.T) {
	now := time.Now()

	t.Run("close records comment and timestamp", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().BuildDomain()
		require.NoError(t, err)

		closedStatusID := uuid.New()
		require.NoError(t, r.Close("  contract ended  ", closedStatusID, now))

		assert.Equal(t, status.KindClosed, r.Kind())
		assert.Equal(t, closedStatusID, r.StatusID())
		assert.Equal(t, "contract ended", r.CloseComment())
		require.NotNil(t, r.ClosedAt())
		assert.Equal(t, now, *r.ClosedAt())
		assert.False(t, r.IsActive(now))
	})

	t.Run("comment is mandatory", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, r.Close("", uuid.New(), now), rental.ErrCommentRequired)
		assert.ErrorIs(t, r.Close("   ", uuid.New(), now), rental.ErrCommentRequired)
	})

	t.Run("close is not repeatable", func(t *testing.T) {
		r, err := builder.NewRentalBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, r.Close("done", uuid.New(), now))

		assert.ErrorIs(t, r.Close("again", uuid.New(), now), rental.ErrRentalClosed)
	})
}
