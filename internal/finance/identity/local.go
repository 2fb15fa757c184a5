package identity

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/cryptox"
	"github.com/amfajardoo/investment-manager/pkg/idx"
)

const minPasswordLength = 6

// LocalProvider implements Provider on top of the credentials store using
// argon2id password hashes. There is no federated backend, so popup sign-in
// always reports the operation as not allowed.
type LocalProvider struct {
	Store store.Store
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (Account, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return Account{}, NewError(domain.CodeInvalidEmail)
	}

	cred, err := p.Store.Credentials().GetCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Account{}, NewError(domain.CodeUserNotFound)
		}
		return Account{}, err
	}
	if cred.Disabled {
		return Account{}, NewError(domain.CodeUserDisabled)
	}

	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return Account{}, NewError(domain.CodeWrongPassword)
		}
		return Account{}, err
	}

	return accountFor(cred), nil
}

func (p *LocalProvider) CreateAccount(ctx context.Context, email, password string) (Account, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return Account{}, NewError(domain.CodeInvalidEmail)
	}
	if len(password) < minPasswordLength {
		return Account{}, NewError(domain.CodeWeakPassword)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return Account{}, err
	}

	now := time.Now().UTC()
	cred := domain.Credential{
		UID:          idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.Store.Credentials().CreateCredential(ctx, cred); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Account{}, NewError(domain.CodeEmailInUse)
		}
		return Account{}, err
	}

	return accountFor(cred), nil
}

func (p *LocalProvider) SignInWithPopup(ctx context.Context) (Account, error) {
	return Account{}, NewError(domain.CodeOperationNotAllowed)
}

func (p *LocalProvider) UpdateProfile(ctx context.Context, uid, displayName string) error {
	err := p.Store.Credentials().UpdateDisplayName(ctx, uid, displayName)
	if errors.Is(err, store.ErrNotFound) {
		return NewError(domain.CodeUserNotFound)
	}
	return err
}

func (p *LocalProvider) SignOut(ctx context.Context) error {
	// Local sessions are stateless; nothing to revoke provider-side.
	return nil
}

func accountFor(cred domain.Credential) Account {
	return Account{
		UID:         cred.UID,
		Email:       cred.Email,
		DisplayName: cred.DisplayName,
		PhotoURL:    cred.PhotoURL,
	}
}
