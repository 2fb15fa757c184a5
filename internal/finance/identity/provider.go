package identity

import "context"

// Error is a provider failure carrying one of the auth/* error codes. Services
// translate these into user-facing auth errors; anything else surfacing from a
// provider is treated as unknown.
type Error struct {
	Code string
}

func (e *Error) Error() string { return e.Code }

// NewError wraps a provider error code.
func NewError(code string) *Error { return &Error{Code: code} }

// Account is the provider's view of an authenticated user.
type Account struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Provider authenticates users and manages their provider-side profile. A
// local implementation backs it with the credentials store; a federated
// implementation would call out to an external identity service.
type Provider interface {
	// SignIn verifies an email/password pair.
	SignIn(ctx context.Context, email, password string) (Account, error)

	// CreateAccount registers a new email/password account.
	CreateAccount(ctx context.Context, email, password string) (Account, error)

	// SignInWithPopup runs an interactive federated sign-in flow.
	SignInWithPopup(ctx context.Context) (Account, error)

	// UpdateProfile changes the display name on the provider side.
	UpdateProfile(ctx context.Context, uid, displayName string) error

	// SignOut tears down any provider-side session state.
	SignOut(ctx context.Context) error
}
