package store

import (
	"context"
	"errors"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Credentials() Credentials
	Profiles() Profiles
	Deposits() Deposits
	Pensions() Pensions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., adding a
	// contribution and bumping the account value).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Credentials interface {
	// CreateCredential inserts a new login record (uid is provided by app via
	// ULID). Returns ErrAlreadyExists when the email is taken.
	CreateCredential(ctx context.Context, c domain.Credential) error

	// GetCredentialByEmail is used during sign-in. Email matching is
	// case-insensitive.
	GetCredentialByEmail(ctx context.Context, email string) (domain.Credential, error)

	// GetCredentialByUID returns a credential by uid.
	GetCredentialByUID(ctx context.Context, uid string) (domain.Credential, error)

	// UpdateDisplayName mutates display_name and bumps updated_at.
	UpdateDisplayName(ctx context.Context, uid string, displayName string) error
}

type Profiles interface {
	// GetProfile returns the stored profile for a uid.
	GetProfile(ctx context.Context, uid string) (domain.UserProfile, error)

	// PutProfile inserts or replaces a profile record.
	PutProfile(ctx context.Context, p domain.UserProfile) error

	// UpdateDisplayName mutates display_name only.
	UpdateDisplayName(ctx context.Context, uid string, displayName string) error
}

type Deposits interface {
	// CreateDeposit inserts a new deposit (id is ULID).
	CreateDeposit(ctx context.Context, d domain.Deposit) error

	// GetDepositByID returns a deposit by id.
	GetDepositByID(ctx context.Context, id string) (domain.Deposit, error)

	// ListDepositsByUser returns all of a user's deposits ordered by maturity
	// date (newest first).
	ListDepositsByUser(ctx context.Context, userID string) ([]domain.Deposit, error)

	// ListActiveDeposits returns a user's active deposits ordered by maturity
	// date (soonest first).
	ListActiveDeposits(ctx context.Context, userID string) ([]domain.Deposit, error)

	// ListAllActiveDeposits returns every active deposit across users. Used by
	// the maturity sweep.
	ListAllActiveDeposits(ctx context.Context) ([]domain.Deposit, error)

	// UpdateDeposit replaces the mutable fields of a deposit and bumps
	// updated_at.
	UpdateDeposit(ctx context.Context, d domain.Deposit) error

	// UpdateDepositStatus sets status and bumps updated_at.
	UpdateDepositStatus(ctx context.Context, id string, status domain.DepositStatus) error

	// MarkAlertSent flips alert_sent so a maturity alert fires once.
	MarkAlertSent(ctx context.Context, id string) error

	// DeleteDeposit removes a deposit.
	DeleteDeposit(ctx context.Context, id string) error
}

type Pensions interface {
	// CreatePension inserts a new pension account (id is ULID).
	CreatePension(ctx context.Context, p domain.PensionAccount) error

	// GetPensionByID returns an account with its contributions loaded,
	// ordered by contribution date (oldest first).
	GetPensionByID(ctx context.Context, id string) (domain.PensionAccount, error)

	// ListPensionsByUser returns a user's accounts with contributions loaded.
	ListPensionsByUser(ctx context.Context, userID string) ([]domain.PensionAccount, error)

	// UpdatePensionValue sets current_value, last_update_date and bumps
	// updated_at.
	UpdatePensionValue(ctx context.Context, id string, value float64, asOf time.Time) error

	// AddContribution appends a contribution row to an account.
	AddContribution(ctx context.Context, accountID string, c domain.Contribution) error

	// DeletePension removes an account; contributions cascade.
	DeletePension(ctx context.Context, id string) error
}
