package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	cdt := &CDTService{Store: s}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hk := NewHousekeepingService(s, cdt, logger, time.Hour)

	asOf := date(2024, time.June, 1)

	expired, err := cdt.Create(ctx, "user-1", domain.Deposit{
		BankName:     "Bancolombia",
		Amount:       1_000_000,
		AnnualRate:   10,
		StartDate:    date(2023, time.June, 1),
		MaturityDate: date(2024, time.May, 1),
	})
	require.NoError(t, err)

	imminent, err := cdt.Create(ctx, "user-1", domain.Deposit{
		BankName:     "Davivienda",
		Amount:       500_000,
		AnnualRate:   9,
		StartDate:    date(2024, time.January, 1),
		MaturityDate: date(2024, time.June, 20),
	})
	require.NoError(t, err)

	distant, err := cdt.Create(ctx, "user-1", domain.Deposit{
		BankName:     "BBVA",
		Amount:       500_000,
		AnnualRate:   9,
		StartDate:    date(2024, time.January, 1),
		MaturityDate: date(2025, time.January, 1),
	})
	require.NoError(t, err)

	hk.Sweep(ctx, asOf)

	t.Run("expired deposit is matured", func(t *testing.T) {
		got, err := cdt.Get(ctx, "user-1", expired.ID)
		require.NoError(t, err)
		require.Equal(t, domain.DepositMatured, got.Status)
	})

	t.Run("imminent deposit alerts exactly once", func(t *testing.T) {
		got, err := cdt.Get(ctx, "user-1", imminent.ID)
		require.NoError(t, err)
		require.True(t, got.AlertSent)
		require.Equal(t, domain.DepositActive, got.Status)

		hk.Sweep(ctx, asOf)
		require.False(t, cdt.ShouldAlert(got, asOf))
	})

	t.Run("distant deposit is untouched", func(t *testing.T) {
		got, err := cdt.Get(ctx, "user-1", distant.ID)
		require.NoError(t, err)
		require.False(t, got.AlertSent)
		require.Equal(t, domain.DepositActive, got.Status)
	})

	t.Run("start and stop are clean", func(t *testing.T) {
		hk2 := NewHousekeepingService(s, cdt, logger, time.Hour)
		hk2.Start()
		hk2.Stop()
	})
}
