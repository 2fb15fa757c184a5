package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/identity"
	"github.com/amfajardoo/investment-manager/internal/finance/session"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/slogx"
)

var ErrNoSession = errors.New("no_active_session")

// AuthService drives the auth state machine: it talks to the identity
// provider, keeps the profile store in sync, and publishes every transition
// through the session store.
type AuthService struct {
	Provider identity.Provider
	Store    store.Store
	Session  *session.Store

	// inFlight rejects overlapping sign-in attempts instead of queueing them.
	inFlight atomic.Bool
}

// Login signs a user in with email and password. Failures never escape as
// raw errors; they come back as a field-scoped outcome and the session stays
// as it was.
func (s *AuthService) Login(ctx context.Context, email, password string) domain.AuthOutcome {
	return s.signIn(ctx, func(ctx context.Context) (identity.Account, error) {
		return s.Provider.SignIn(ctx, email, password)
	})
}

// LoginWithGoogle runs the federated popup flow.
func (s *AuthService) LoginWithGoogle(ctx context.Context) domain.AuthOutcome {
	return s.signIn(ctx, func(ctx context.Context) (identity.Account, error) {
		return s.Provider.SignInWithPopup(ctx)
	})
}

// Register creates a new account, applies the chosen display name, and signs
// the user in.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) domain.AuthOutcome {
	return s.signIn(ctx, func(ctx context.Context) (identity.Account, error) {
		acct, err := s.Provider.CreateAccount(ctx, email, password)
		if err != nil {
			return identity.Account{}, err
		}
		if displayName != "" {
			if err := s.Provider.UpdateProfile(ctx, acct.UID, displayName); err != nil {
				return identity.Account{}, err
			}
			acct.DisplayName = displayName
		}
		return acct, nil
	})
}

// signIn is the shared state-machine walk: loading on, provider call, profile
// sync, then either SetUser or SetError. Only one walk runs at a time.
func (s *AuthService) signIn(ctx context.Context, authenticate func(ctx context.Context) (identity.Account, error)) domain.AuthOutcome {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Failure(domain.CodeInProgress)
	}
	defer s.inFlight.Store(false)

	s.Session.SetLoading()

	acct, err := authenticate(ctx)
	if err != nil {
		authErr := toAuthError(err)
		s.Session.SetError(authErr)
		return domain.AuthOutcome{Success: false, Error: authErr}
	}

	profile, err := s.ensureProfile(ctx, acct)
	if err != nil {
		slogx.FromContext(ctx).Error("profile sync failed", "uid", acct.UID, "error", err)
		authErr := domain.NewAuthError(domain.CodeUnknown)
		s.Session.SetError(authErr)
		return domain.AuthOutcome{Success: false, Error: authErr}
	}

	s.Session.SetUser(profile)
	return domain.AuthOutcome{Success: true, User: &profile}
}

// Logout signs uid out. A provider-side sign-out failure is logged and
// swallowed so the user is never stuck signed in. The shared session is
// cleared only when it belongs to uid; one user signing out must not end
// another user's session.
func (s *AuthService) Logout(ctx context.Context, uid string) {
	if err := s.Provider.SignOut(ctx); err != nil {
		slogx.FromContext(ctx).Warn("provider sign-out failed", "uid", uid, "error", err)
	}
	snap := s.Session.Snapshot()
	if !snap.IsAuthenticated || snap.User.UID == uid {
		s.Session.Clear()
	}
}

// LoadUserProfile fetches the stored profile for a uid.
func (s *AuthService) LoadUserProfile(ctx context.Context, uid string) (domain.UserProfile, error) {
	return s.Store.Profiles().GetProfile(ctx, uid)
}

// UpdateDisplayName renames uid everywhere: provider, profile store, and,
// when the shared session belongs to uid, the session too. The uid comes from
// the caller's own credentials, never from the session, so one user can never
// rename another. The error is logged before it is returned so a failed
// rename is visible even when callers drop it.
func (s *AuthService) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	if uid == "" {
		return ErrNoSession
	}

	if err := s.Provider.UpdateProfile(ctx, uid, displayName); err != nil {
		slogx.FromContext(ctx).Error("display name update failed", "uid", uid, "error", err)
		return err
	}
	if err := s.Store.Profiles().UpdateDisplayName(ctx, uid, displayName); err != nil {
		slogx.FromContext(ctx).Error("display name update failed", "uid", uid, "error", err)
		return err
	}

	if snap := s.Session.Snapshot(); snap.IsAuthenticated && snap.User.UID == uid {
		s.Session.UpdateDisplayName(displayName)
	}
	return nil
}

// ensureProfile lazily creates the stored profile on first sign-in. Existing
// profiles are returned as-is so user edits survive re-authentication.
func (s *AuthService) ensureProfile(ctx context.Context, acct identity.Account) (domain.UserProfile, error) {
	profile, err := s.Store.Profiles().GetProfile(ctx, acct.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.UserProfile{}, err
	}

	displayName := acct.DisplayName
	if displayName == "" {
		displayName = "User"
	}
	profile = domain.UserProfile{
		UID:         acct.UID,
		Email:       acct.Email,
		DisplayName: displayName,
		PhotoURL:    acct.PhotoURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Profiles().PutProfile(ctx, profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// toAuthError maps a provider failure onto the field-scoped error vocabulary.
// Anything that is not a provider error becomes unknown.
func toAuthError(err error) *domain.AuthError {
	var pe *identity.Error
	if errors.As(err, &pe) {
		return domain.NewAuthError(pe.Code)
	}
	return domain.NewAuthError(domain.CodeUnknown)
}
