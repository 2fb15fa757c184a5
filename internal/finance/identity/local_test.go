package identity

import (
	"context"
	"testing"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *LocalProvider {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &LocalProvider{Store: s}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	var pe *Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, code, pe.Code)
}

func TestCreateAccountValidation(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := p.CreateAccount(ctx, "not-an-email", "secret123")
		requireCode(t, err, domain.CodeInvalidEmail)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := p.CreateAccount(ctx, "alice@example.com", "12345")
		requireCode(t, err, domain.CodeWeakPassword)
	})

	t.Run("creates then rejects duplicate email", func(t *testing.T) {
		acc, err := p.CreateAccount(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		require.NotEmpty(t, acc.UID)
		require.Equal(t, "alice@example.com", acc.Email)

		_, err = p.CreateAccount(ctx, "Alice@Example.com", "secret123")
		requireCode(t, err, domain.CodeEmailInUse)
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	created, err := p.CreateAccount(ctx, "bob@example.com", "secret123")
	require.NoError(t, err)

	t.Run("correct password succeeds", func(t *testing.T) {
		acc, err := p.SignIn(ctx, "bob@example.com", "secret123")
		require.NoError(t, err)
		require.Equal(t, created.UID, acc.UID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := p.SignIn(ctx, "bob@example.com", "wrong-pass")
		requireCode(t, err, domain.CodeWrongPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := p.SignIn(ctx, "nobody@example.com", "secret123")
		requireCode(t, err, domain.CodeUserNotFound)
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := p.SignIn(ctx, "nobody", "secret123")
		requireCode(t, err, domain.CodeInvalidEmail)
	})
}

func TestPopupNotAllowedLocally(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.SignInWithPopup(context.Background())
	requireCode(t, err, domain.CodeOperationNotAllowed)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	acc, err := p.CreateAccount(ctx, "carol@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, p.UpdateProfile(ctx, acc.UID, "Carol"))

	got, err := p.SignIn(ctx, "carol@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "Carol", got.DisplayName)

	err = p.UpdateProfile(ctx, "missing-uid", "Nobody")
	requireCode(t, err, domain.CodeUserNotFound)
}
