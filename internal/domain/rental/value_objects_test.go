//go:build unit

package rental_test

import (
	"testing"
	"time"

	"storent/internal/domain/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func mustPeriod(t *testing.T, start, end time.Time) rental.Period {
	t.Helper()
	p, err := rental.NewPeriod(start, end)
	require.NoError(t, err)
	return p
}

func TestPeriod(t *testing.T) {
	t.Run("end must be after start", func(t *testing.T) {
		_, err := rental.NewPeriod(day(5), day(5))
		assert.ErrorIs(t, err, rental.ErrInvalidPeriod)

		_, err = rental.NewPeriod(day(5), day(4))
		assert.ErrorIs(t, err, rental.ErrInvalidPeriod)

		_, err = rental.NewPeriod(day(5), day(6))
		assert.NoError(t, err)
	})

	t.Run("contains is half-open", func(t *testing.T) {
		p := mustPeriod(t, day(0), day(10))

		assert.True(t, p.Contains(day(0)), "start is inside")
		assert.True(t, p.Contains(day(9)))
		assert.False(t, p.Contains(day(10)), "end is outside")
		assert.False(t, p.Contains(day(-1)))
	})

	t.Run("overlap semantics", func(t *testing.T) {
		base := mustPeriod(t, day(10), day(20))

		cases := []struct {
			name     string
			other    rental.Period
			overlaps bool
		}{
			{"identical", mustPeriod(t, day(10), day(20)), true},
			{"contained", mustPeriod(t, day(12), day(18)), true},
			{"containing", mustPeriod(t, day(5), day(25)), true},
			{"left overlap", mustPeriod(t, day(5), day(11)), true},
			{"right overlap", mustPeriod(t, day(19), day(25)), true},
			{"back to back before", mustPeriod(t, day(0), day(10)), false},
			{"back to back after", mustPeriod(t, day(20), day(30)), false},
			{"disjoint", mustPeriod(t, day(30), day(40)), false},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				assert.Equal(t, c.overlaps, base.Overlaps(c.other))
				assert.Equal(t, c.overlaps, c.other.Overlaps(base), "overlap is symmetric")
			})
		}
	})
}

func TestExtensionAmount(t *testing.T) {
	cases := []struct {
		name   string
		months int
		days   int
		errIs  error
	}{
		{name: "months only", months: 2},
		{name: "days only", days: 45},
		{name: "both units is ambiguous", months: 1, days: 10, errIs: rental.ErrAmbiguousExtension},
		{name: "neither unit", errIs: rental.ErrMissingExtension},
		{name: "negative months", months: -1, errIs: rental.ErrNonPositiveExtension},
		{name: "negative days", days: -5, errIs: rental.ErrNonPositiveExtension},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			amount, err := rental.NewExtensionAmount(c.months, c.days)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.months, amount.Months())
			assert.Equal(t, c.days, amount.Days())
		})
	}

	t.Run("months use calendar arithmetic", func(t *testing.T) {
		amount, err := rental.MonthsAmount(1)
		require.NoError(t, err)

		jan31 := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), amount.Apply(jan31))
	})

	t.Run("days add exactly", func(t *testing.T) {
		amount, err := rental.DaysAmount(10)
		require.NoError(t, err)
		assert.Equal(t, day(15), amount.Apply(day(5)))
	})
}
