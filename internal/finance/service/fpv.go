package service

import (
	"context"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/idx"
)

// DefaultLockupYears is how long a voluntary pension contribution stays
// locked before it can be withdrawn without losing its tax benefit.
const DefaultLockupYears = 10

// FPVService manages voluntary pension accounts (FPV) and their
// contribution-level withdrawal math.
type FPVService struct {
	Store store.Store
	Tax   *TaxBenefitService

	// LockupYears overrides DefaultLockupYears when positive.
	LockupYears int
}

func (s *FPVService) lockupYears() int {
	if s.LockupYears > 0 {
		return s.LockupYears
	}
	return DefaultLockupYears
}

// Calculate summarizes an account as of the given instant: totals, returns,
// and the withdrawable split. The account's current value is apportioned
// pro-rata across contributions by amount, so an account with no
// contributions has nothing withdrawable rather than dividing by zero.
func (s *FPVService) Calculate(acct domain.PensionAccount, asOf time.Time) domain.PensionCalculation {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	acct = s.refreshWithdrawable(acct, asOf)

	var total, benefit, withdrawableBase float64
	var withdrawableCount int
	for _, c := range acct.Contributions {
		total += c.Amount
		benefit += c.TaxBenefit
		if c.Withdrawable {
			withdrawableBase += c.Amount
			withdrawableCount++
		}
	}

	var withdrawable float64
	if total > 0 {
		withdrawable = acct.CurrentValue * withdrawableBase / total
	}

	var returnPct float64
	if total > 0 {
		returnPct = (acct.CurrentValue - total) / total * 100
	}

	return domain.PensionCalculation{
		TotalContributions:        total,
		CurrentValue:              acct.CurrentValue,
		AbsoluteReturn:            acct.CurrentValue - total,
		ReturnPercentage:          returnPct,
		TotalTaxBenefit:           benefit,
		WithdrawableAmount:        withdrawable,
		NonWithdrawableAmount:     acct.CurrentValue - withdrawable,
		WithdrawableContributions: withdrawableCount,
	}
}

// refreshWithdrawable recomputes each contribution's withdrawable flag from
// its lock-up date. Stored flags are never trusted; time moving forward is
// what unlocks a contribution.
func (s *FPVService) refreshWithdrawable(acct domain.PensionAccount, asOf time.Time) domain.PensionAccount {
	out := acct
	out.Contributions = make([]domain.Contribution, len(acct.Contributions))
	for i, c := range acct.Contributions {
		unlockAt := c.WithdrawableDate
		if unlockAt == nil {
			t := c.Date.AddDate(s.lockupYears(), 0, 0)
			unlockAt = &t
			c.WithdrawableDate = unlockAt
		}
		c.Withdrawable = !asOf.Before(*unlockAt)
		out.Contributions[i] = c
	}
	return out
}

// MarkWithdrawable returns a copy of the account with withdrawable flags
// refreshed as of asOf. The input account is not mutated.
func (s *FPVService) MarkWithdrawable(acct domain.PensionAccount, asOf time.Time) domain.PensionAccount {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return s.refreshWithdrawable(acct, asOf)
}

// Create persists a new pension account for a user.
func (s *FPVService) Create(ctx context.Context, userID string, acct domain.PensionAccount) (domain.PensionAccount, error) {
	now := time.Now().UTC()
	acct.ID = idx.New().String()
	acct.UserID = userID
	acct.Contributions = nil
	if acct.LastUpdateDate.IsZero() {
		acct.LastUpdateDate = now
	}
	acct.CreatedAt = now
	acct.UpdatedAt = now

	if err := s.Store.Pensions().CreatePension(ctx, acct); err != nil {
		return domain.PensionAccount{}, err
	}
	return acct, nil
}

// Get fetches an account with withdrawable flags refreshed, enforcing
// ownership.
func (s *FPVService) Get(ctx context.Context, userID, accountID string) (domain.PensionAccount, error) {
	acct, err := s.Store.Pensions().GetPensionByID(ctx, accountID)
	if err != nil {
		return domain.PensionAccount{}, err
	}
	if acct.UserID != userID {
		return domain.PensionAccount{}, ErrNotOwner
	}
	return s.refreshWithdrawable(acct, time.Now()), nil
}

// List returns a user's accounts with withdrawable flags refreshed.
func (s *FPVService) List(ctx context.Context, userID string) ([]domain.PensionAccount, error) {
	accts, err := s.Store.Pensions().ListPensionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range accts {
		accts[i] = s.refreshWithdrawable(accts[i], now)
	}
	return accts, nil
}

// AddContribution appends a contribution to an account. The lock-up date is
// derived from the contribution date and the tax benefit from the user's
// monthly income. The account's current value moves in the same transaction.
func (s *FPVService) AddContribution(ctx context.Context, userID, accountID string, date time.Time, amount, monthlyIncome float64) (domain.Contribution, error) {
	acct, err := s.Get(ctx, userID, accountID)
	if err != nil {
		return domain.Contribution{}, err
	}

	if date.IsZero() {
		date = time.Now().UTC()
	}
	unlockAt := date.AddDate(s.lockupYears(), 0, 0)
	c := domain.Contribution{
		ID:               idx.New().String(),
		Date:             date,
		Amount:           amount,
		TaxBenefit:       s.Tax.ContributionBenefit(amount, monthlyIncome),
		Withdrawable:     false,
		WithdrawableDate: &unlockAt,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Pensions().AddContribution(ctx, accountID, c); err != nil {
			return err
		}
		return tx.Pensions().UpdatePensionValue(ctx, accountID, acct.CurrentValue+amount, date)
	})
	if err != nil {
		return domain.Contribution{}, err
	}
	return c, nil
}

// UpdateValue records a fresh statement value for an account.
func (s *FPVService) UpdateValue(ctx context.Context, userID, accountID string, value float64, asOf time.Time) error {
	if _, err := s.Get(ctx, userID, accountID); err != nil {
		return err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return s.Store.Pensions().UpdatePensionValue(ctx, accountID, value, asOf)
}

// Delete removes an account and its contributions after an ownership check.
func (s *FPVService) Delete(ctx context.Context, userID, accountID string) error {
	if _, err := s.Get(ctx, userID, accountID); err != nil {
		return err
	}
	return s.Store.Pensions().DeletePension(ctx, accountID)
}
