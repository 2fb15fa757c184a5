package service

import (
	"context"
	"testing"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestCDTCalculate(t *testing.T) {
	svc := &CDTService{}

	t.Run("full year at ten percent", func(t *testing.T) {
		d := domain.Deposit{
			Amount:       1_000_000,
			AnnualRate:   10,
			StartDate:    date(2023, time.January, 1),
			MaturityDate: date(2024, time.January, 1),
		}
		calc := svc.Calculate(d, date(2024, time.January, 1))

		require.Equal(t, 365, calc.DaysElapsed)
		require.Equal(t, 365, calc.TotalDays)
		require.InDelta(t, 100_000, calc.GrossEarnings, 0.01)
		require.InDelta(t, 100_000, calc.NetEarnings, 0.01)
		require.InDelta(t, 1_100_000, calc.FinalAmount, 0.01)
		require.InDelta(t, 10, calc.EffectiveRate, 1e-9)
	})

	t.Run("withholding comes out of gross", func(t *testing.T) {
		d := domain.Deposit{
			Amount:         1_000_000,
			AnnualRate:     10,
			StartDate:      date(2023, time.January, 1),
			MaturityDate:   date(2024, time.January, 1),
			WithholdingTax: 4,
		}
		calc := svc.Calculate(d, date(2024, time.January, 1))

		require.InDelta(t, 100_000, calc.GrossEarnings, 0.01)
		require.InDelta(t, 4_000, calc.WithholdingTax, 0.01)
		require.InDelta(t, 96_000, calc.NetEarnings, 0.01)
		require.InDelta(t, 1_096_000, calc.FinalAmount, 0.01)
	})

	t.Run("accrual stops at maturity", func(t *testing.T) {
		d := domain.Deposit{
			Amount:       1_000_000,
			AnnualRate:   10,
			StartDate:    date(2023, time.January, 1),
			MaturityDate: date(2024, time.January, 1),
		}
		atMaturity := svc.Calculate(d, date(2024, time.January, 1))
		longAfter := svc.Calculate(d, date(2026, time.January, 1))

		require.Equal(t, atMaturity.GrossEarnings, longAfter.GrossEarnings)
		require.Equal(t, 365, longAfter.DaysElapsed)
	})

	t.Run("nothing accrued before start", func(t *testing.T) {
		d := domain.Deposit{
			Amount:       1_000_000,
			AnnualRate:   10,
			StartDate:    date(2024, time.June, 1),
			MaturityDate: date(2025, time.June, 1),
		}
		calc := svc.Calculate(d, date(2024, time.January, 1))

		require.Equal(t, 0, calc.DaysElapsed)
		require.Zero(t, calc.GrossEarnings)
		require.Equal(t, d.Amount, calc.FinalAmount)
	})
}

func TestCDTShouldAlert(t *testing.T) {
	svc := &CDTService{}
	asOf := date(2024, time.June, 1)

	mk := func(daysToMaturity int, status domain.DepositStatus, alertSent bool) domain.Deposit {
		return domain.Deposit{
			Status:       status,
			AlertSent:    alertSent,
			MaturityDate: asOf.AddDate(0, 0, daysToMaturity),
		}
	}

	tests := []struct {
		name string
		d    domain.Deposit
		want bool
	}{
		{"inside window", mk(15, domain.DepositActive, false), true},
		{"at window edge", mk(30, domain.DepositActive, false), true},
		{"outside window", mk(31, domain.DepositActive, false), false},
		{"matures today", mk(0, domain.DepositActive, false), false},
		{"already matured", mk(-5, domain.DepositActive, false), false},
		{"already alerted", mk(15, domain.DepositActive, true), false},
		{"not active", mk(15, domain.DepositMatured, false), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, svc.ShouldAlert(tc.d, asOf))
		})
	}
}

func TestCDTLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := &CDTService{Store: newTestStore(t)}

	d, err := svc.Create(ctx, "user-1", domain.Deposit{
		BankName:     "Davivienda",
		Amount:       2_000_000,
		AnnualRate:   11.5,
		StartDate:    date(2024, time.January, 15),
		MaturityDate: date(2024, time.July, 15),
	})
	require.NoError(t, err)
	require.Equal(t, domain.DepositActive, d.Status)

	t.Run("other users cannot touch it", func(t *testing.T) {
		_, err := svc.Get(ctx, "user-2", d.ID)
		require.ErrorIs(t, err, ErrNotOwner)

		err = svc.Delete(ctx, "user-2", d.ID)
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("renewed is a terminal state", func(t *testing.T) {
		require.NoError(t, svc.ChangeStatus(ctx, "user-1", d.ID, domain.DepositRenewed))

		err := svc.ChangeStatus(ctx, "user-1", d.ID, domain.DepositMatured)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("delete removes it", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "user-1", d.ID))
		_, err := svc.Get(ctx, "user-1", d.ID)
		require.Error(t, err)
	})
}
