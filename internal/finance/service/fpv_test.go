package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/stretchr/testify/require"
)

func newFPVService(t *testing.T) *FPVService {
	t.Helper()
	return &FPVService{
		Store: newTestStore(t),
		Tax:   &TaxBenefitService{Config: DefaultTaxBenefitConfig()},
	}
}

func TestFPVCalculate(t *testing.T) {
	svc := &FPVService{Tax: &TaxBenefitService{Config: DefaultTaxBenefitConfig()}}
	asOf := date(2024, time.June, 1)

	t.Run("empty account yields zeros, not NaN", func(t *testing.T) {
		calc := svc.Calculate(domain.PensionAccount{CurrentValue: 0}, asOf)

		require.Zero(t, calc.TotalContributions)
		require.Zero(t, calc.WithdrawableAmount)
		require.Zero(t, calc.NonWithdrawableAmount)
		require.Zero(t, calc.ReturnPercentage)
		require.False(t, math.IsNaN(calc.WithdrawableAmount))
		require.False(t, math.IsNaN(calc.NonWithdrawableAmount))
	})

	t.Run("growth on a fully unlocked contribution is all withdrawable", func(t *testing.T) {
		acct := domain.PensionAccount{
			CurrentValue: 150,
			Contributions: []domain.Contribution{
				{Date: asOf.AddDate(-11, 0, 0), Amount: 100},
			},
		}
		calc := svc.Calculate(acct, asOf)

		require.Equal(t, 100.0, calc.TotalContributions)
		require.InDelta(t, 50, calc.AbsoluteReturn, 1e-9)
		require.InDelta(t, 50, calc.ReturnPercentage, 1e-9)
		require.InDelta(t, 150, calc.WithdrawableAmount, 1e-9)
		require.Zero(t, calc.NonWithdrawableAmount)
		require.Equal(t, 1, calc.WithdrawableContributions)
	})

	t.Run("value splits pro-rata and the halves reconcile", func(t *testing.T) {
		acct := domain.PensionAccount{
			CurrentValue: 300,
			Contributions: []domain.Contribution{
				{Date: asOf.AddDate(-11, 0, 0), Amount: 100},
				{Date: asOf.AddDate(0, -1, 0), Amount: 100},
			},
		}
		calc := svc.Calculate(acct, asOf)

		require.InDelta(t, 150, calc.WithdrawableAmount, 1e-9)
		require.InDelta(t, 150, calc.NonWithdrawableAmount, 1e-9)
		require.InDelta(t, calc.CurrentValue, calc.WithdrawableAmount+calc.NonWithdrawableAmount, 1e-9)
		require.Equal(t, 1, calc.WithdrawableContributions)
	})

	t.Run("stored flags are not trusted", func(t *testing.T) {
		acct := domain.PensionAccount{
			CurrentValue: 100,
			Contributions: []domain.Contribution{
				// Flag says withdrawable but the lock-up has not passed.
				{Date: asOf.AddDate(-1, 0, 0), Amount: 100, Withdrawable: true},
			},
		}
		calc := svc.Calculate(acct, asOf)

		require.Zero(t, calc.WithdrawableAmount)
		require.Equal(t, 0, calc.WithdrawableContributions)
	})
}

func TestFPVMarkWithdrawableDoesNotMutate(t *testing.T) {
	svc := &FPVService{}
	asOf := date(2024, time.June, 1)

	acct := domain.PensionAccount{
		Contributions: []domain.Contribution{
			{Date: asOf.AddDate(-11, 0, 0), Amount: 100},
		},
	}
	out := svc.MarkWithdrawable(acct, asOf)

	require.True(t, out.Contributions[0].Withdrawable)
	require.NotNil(t, out.Contributions[0].WithdrawableDate)
	require.False(t, acct.Contributions[0].Withdrawable)
	require.Nil(t, acct.Contributions[0].WithdrawableDate)
}

func TestFPVContributionFlow(t *testing.T) {
	ctx := context.Background()
	svc := newFPVService(t)

	acct, err := svc.Create(ctx, "user-1", domain.PensionAccount{
		InstitutionName: "Protección",
		CurrentValue:    1_000_000,
	})
	require.NoError(t, err)

	when := date(2024, time.March, 1)
	c, err := svc.AddContribution(ctx, "user-1", acct.ID, when, 500_000, 10_000_000)
	require.NoError(t, err)

	t.Run("lock-up lands ten years out", func(t *testing.T) {
		require.NotNil(t, c.WithdrawableDate)
		require.Equal(t, date(2034, time.March, 1), c.WithdrawableDate.UTC())
		require.False(t, c.Withdrawable)
	})

	t.Run("tax benefit is capped", func(t *testing.T) {
		require.InDelta(t, 500_000, c.TaxBenefit, 1e-9)
	})

	t.Run("account value moved with the contribution", func(t *testing.T) {
		got, err := svc.Get(ctx, "user-1", acct.ID)
		require.NoError(t, err)
		require.InDelta(t, 1_500_000, got.CurrentValue, 1e-9)
		require.Len(t, got.Contributions, 1)
	})

	t.Run("ownership is enforced", func(t *testing.T) {
		_, err := svc.AddContribution(ctx, "user-2", acct.ID, when, 1, 1)
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("statement updates stick", func(t *testing.T) {
		require.NoError(t, svc.UpdateValue(ctx, "user-1", acct.ID, 1_600_000, time.Time{}))
		got, err := svc.Get(ctx, "user-1", acct.ID)
		require.NoError(t, err)
		require.InDelta(t, 1_600_000, got.CurrentValue, 1e-9)
	})

	t.Run("delete removes account and contributions", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "user-1", acct.ID))
		_, err := svc.Get(ctx, "user-1", acct.ID)
		require.Error(t, err)
	})
}
