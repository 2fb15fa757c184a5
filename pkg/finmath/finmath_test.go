package finmath_test

import (
	"testing"
	"time"

	"github.com/amfajardoo/investment-manager/pkg/finmath"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("whole days", func(t *testing.T) {
		require.Equal(t, 365, finmath.DaysBetween(base, base.AddDate(1, 0, 0)))
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		require.Equal(t, 1, finmath.DaysBetween(base, base.Add(time.Hour)))
	})

	t.Run("negative when end precedes start", func(t *testing.T) {
		require.Equal(t, -10, finmath.DaysBetween(base, base.AddDate(0, 0, -10)))
	})
}

func TestElapsedDaysClamped(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	maturity := start.AddDate(0, 0, 90)

	t.Run("mid term", func(t *testing.T) {
		elapsed, total := finmath.ElapsedDays(start, maturity, start.AddDate(0, 0, 30))
		require.Equal(t, 30, elapsed)
		require.Equal(t, 90, total)
	})

	t.Run("never exceeds total, even far past maturity", func(t *testing.T) {
		elapsed, total := finmath.ElapsedDays(start, maturity, start.AddDate(5, 0, 0))
		require.Equal(t, total, elapsed)
	})

	t.Run("never negative before the term starts", func(t *testing.T) {
		elapsed, _ := finmath.ElapsedDays(start, maturity, start.AddDate(0, 0, -7))
		require.Equal(t, 0, elapsed)
	})
}

func TestCompoundFactor(t *testing.T) {
	t.Parallel()

	t.Run("full year at 10 percent", func(t *testing.T) {
		require.InDelta(t, 0.10, finmath.CompoundFactor(10, 365, 365), 1e-12)
	})

	t.Run("zero elapsed yields zero return", func(t *testing.T) {
		require.Zero(t, finmath.CompoundFactor(10, 0, 365))
	})
}

func TestRateConversionsRoundTrip(t *testing.T) {
	t.Parallel()

	for _, annual := range []float64{0, 0.5, 5, 9.25, 12, 25, 50} {
		monthly := finmath.AnnualToMonthly(annual)
		require.InDelta(t, annual, finmath.MonthlyToAnnual(monthly), 1e-9, "annual=%v", annual)
	}
}

func TestNominalToAnnual(t *testing.T) {
	t.Parallel()

	// 12% nominal compounded monthly is ~12.6825% effective annual.
	require.InDelta(t, 12.6825, finmath.NominalToAnnual(12, 12), 1e-3)

	// Single period nominal equals effective.
	require.InDelta(t, 10, finmath.NominalToAnnual(10, 1), 1e-12)
}
