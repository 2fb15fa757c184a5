package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestCredentialsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	cred := domain.Credential{
		UID:          idx.New().String(),
		Email:        "alice@example.com",
		PasswordHash: "hash",
		DisplayName:  "Alice",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Credentials().CreateCredential(ctx, cred))

	t.Run("lookup by email is case-insensitive", func(t *testing.T) {
		got, err := s.Credentials().GetCredentialByEmail(ctx, "ALICE@Example.COM")
		require.NoError(t, err)
		require.Equal(t, cred.UID, got.UID)
		require.Equal(t, "Alice", got.DisplayName)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		dup := cred
		dup.UID = idx.New().String()
		err := s.Credentials().CreateCredential(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing uid maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Credentials().GetCredentialByUID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("display name update sticks", func(t *testing.T) {
		require.NoError(t, s.Credentials().UpdateDisplayName(ctx, cred.UID, "Alice B"))
		got, err := s.Credentials().GetCredentialByUID(ctx, cred.UID)
		require.NoError(t, err)
		require.Equal(t, "Alice B", got.DisplayName)
	})
}

func TestProfilesUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := domain.UserProfile{
		UID:         idx.New().String(),
		Email:       "bob@example.com",
		DisplayName: "Bob",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Profiles().PutProfile(ctx, p))

	p.DisplayName = "Bobby"
	require.NoError(t, s.Profiles().PutProfile(ctx, p))

	got, err := s.Profiles().GetProfile(ctx, p.UID)
	require.NoError(t, err)
	require.Equal(t, "Bobby", got.DisplayName)
}

func TestDepositsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	userID := idx.New().String()
	now := time.Now().UTC().Truncate(time.Second)

	mk := func(maturity time.Time, status domain.DepositStatus) domain.Deposit {
		d := domain.Deposit{
			ID:           idx.New().String(),
			UserID:       userID,
			BankName:     "Bancolombia",
			Amount:       1_000_000,
			AnnualRate:   10,
			StartDate:    now.AddDate(0, -6, 0),
			MaturityDate: maturity,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, s.Deposits().CreateDeposit(ctx, d))
		return d
	}

	early := mk(now.AddDate(0, 1, 0), domain.DepositActive)
	late := mk(now.AddDate(0, 6, 0), domain.DepositActive)
	mk(now.AddDate(0, 3, 0), domain.DepositMatured)

	t.Run("active deposits come back soonest first", func(t *testing.T) {
		got, err := s.Deposits().ListActiveDeposits(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, early.ID, got[0].ID)
		require.Equal(t, late.ID, got[1].ID)
	})

	t.Run("all deposits come back newest maturity first", func(t *testing.T) {
		got, err := s.Deposits().ListDepositsByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, late.ID, got[0].ID)
	})

	t.Run("status update and alert flag persist", func(t *testing.T) {
		require.NoError(t, s.Deposits().UpdateDepositStatus(ctx, early.ID, domain.DepositMatured))
		require.NoError(t, s.Deposits().MarkAlertSent(ctx, late.ID))

		got, err := s.Deposits().GetDepositByID(ctx, early.ID)
		require.NoError(t, err)
		require.Equal(t, domain.DepositMatured, got.Status)

		got, err = s.Deposits().GetDepositByID(ctx, late.ID)
		require.NoError(t, err)
		require.True(t, got.AlertSent)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, s.Deposits().DeleteDeposit(ctx, early.ID))
		_, err := s.Deposits().GetDepositByID(ctx, early.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPensionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	userID := idx.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	withdrawableAt := now.AddDate(10, 0, 0)

	acct := domain.PensionAccount{
		ID:              idx.New().String(),
		UserID:          userID,
		InstitutionName: "Protección",
		CurrentValue:    500_000,
		LastUpdateDate:  now,
		Contributions: []domain.Contribution{
			{
				ID:               idx.New().String(),
				Date:             now.AddDate(-1, 0, 0),
				Amount:           300_000,
				TaxBenefit:       90_000,
				WithdrawableDate: &withdrawableAt,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Pensions().CreatePension(ctx, acct))

	t.Run("contributions load with the account", func(t *testing.T) {
		got, err := s.Pensions().GetPensionByID(ctx, acct.ID)
		require.NoError(t, err)
		require.Len(t, got.Contributions, 1)
		require.Equal(t, 300_000.0, got.Contributions[0].Amount)
		require.NotNil(t, got.Contributions[0].WithdrawableDate)
		require.True(t, got.Contributions[0].WithdrawableDate.Equal(withdrawableAt))
	})

	t.Run("value update sticks", func(t *testing.T) {
		asOf := now.AddDate(0, 1, 0)
		require.NoError(t, s.Pensions().UpdatePensionValue(ctx, acct.ID, 600_000, asOf))
		got, err := s.Pensions().GetPensionByID(ctx, acct.ID)
		require.NoError(t, err)
		require.Equal(t, 600_000.0, got.CurrentValue)
	})

	t.Run("additional contributions append in date order", func(t *testing.T) {
		c := domain.Contribution{
			ID:     idx.New().String(),
			Date:   now,
			Amount: 100_000,
		}
		require.NoError(t, s.Pensions().AddContribution(ctx, acct.ID, c))

		got, err := s.Pensions().GetPensionByID(ctx, acct.ID)
		require.NoError(t, err)
		require.Len(t, got.Contributions, 2)
		require.Equal(t, 300_000.0, got.Contributions[0].Amount)
	})

	t.Run("delete cascades to contributions", func(t *testing.T) {
		require.NoError(t, s.Pensions().DeletePension(ctx, acct.ID))
		_, err := s.Pensions().GetPensionByID(ctx, acct.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		accts, err := s.Pensions().ListPensionsByUser(ctx, userID)
		require.NoError(t, err)
		require.Empty(t, accts)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	acct := domain.PensionAccount{
		ID:              idx.New().String(),
		UserID:          idx.New().String(),
		InstitutionName: "Porvenir",
		LastUpdateDate:  now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	errBoom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Pensions().CreatePension(ctx, acct); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = s.Pensions().GetPensionByID(ctx, acct.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
