package service

import (
	"context"
	"errors"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/finmath"
	"github.com/amfajardoo/investment-manager/pkg/idx"
)

// DefaultAlertWindowDays is how far ahead of maturity an alert fires.
const DefaultAlertWindowDays = 30

var (
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNotOwner          = errors.New("not_owner")
)

// CDTService manages fixed-term deposits and their earnings math.
type CDTService struct {
	Store store.Store

	// AlertWindowDays overrides DefaultAlertWindowDays when positive.
	AlertWindowDays int
}

// Calculate projects the earnings of a deposit as of the given instant.
// A zero asOf means now. Interest compounds over elapsed calendar days
// against the full term, clamped so a matured deposit stops accruing.
func (s *CDTService) Calculate(d domain.Deposit, asOf time.Time) domain.DepositCalculation {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	elapsed, total := finmath.ElapsedDays(d.StartDate, d.MaturityDate, asOf)
	factor := finmath.CompoundFactor(d.AnnualRate, elapsed, finmath.DaysPerYear)

	gross := d.Amount * factor
	withheld := gross * d.WithholdingTax / 100
	net := gross - withheld

	return domain.DepositCalculation{
		InitialAmount:  d.Amount,
		GrossEarnings:  gross,
		WithholdingTax: withheld,
		NetEarnings:    net,
		FinalAmount:    d.Amount + net,
		DaysElapsed:    elapsed,
		TotalDays:      total,
		EffectiveRate:  factor * 100,
	}
}

// DaysUntilExpiration counts whole days from asOf to maturity. Negative once
// the deposit has matured.
func (s *CDTService) DaysUntilExpiration(d domain.Deposit, asOf time.Time) int {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return finmath.DaysBetween(asOf, d.MaturityDate)
}

// ShouldAlert reports whether a maturity alert should fire: the deposit is
// active, inside the alert window, and has not alerted before. Deposits past
// maturity no longer alert; the sweep matures them instead.
func (s *CDTService) ShouldAlert(d domain.Deposit, asOf time.Time) bool {
	if d.Status != domain.DepositActive || d.AlertSent {
		return false
	}
	days := s.DaysUntilExpiration(d, asOf)
	return days > 0 && days <= s.alertWindow()
}

func (s *CDTService) alertWindow() int {
	if s.AlertWindowDays > 0 {
		return s.AlertWindowDays
	}
	return DefaultAlertWindowDays
}

// Create persists a new deposit for a user. Status starts active.
func (s *CDTService) Create(ctx context.Context, userID string, d domain.Deposit) (domain.Deposit, error) {
	now := time.Now().UTC()
	d.ID = idx.New().String()
	d.UserID = userID
	d.Status = domain.DepositActive
	d.AlertSent = false
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.Store.Deposits().CreateDeposit(ctx, d); err != nil {
		return domain.Deposit{}, err
	}
	return d, nil
}

// Get fetches a deposit, enforcing ownership.
func (s *CDTService) Get(ctx context.Context, userID, depositID string) (domain.Deposit, error) {
	d, err := s.Store.Deposits().GetDepositByID(ctx, depositID)
	if err != nil {
		return domain.Deposit{}, err
	}
	if d.UserID != userID {
		return domain.Deposit{}, ErrNotOwner
	}
	return d, nil
}

// List returns all of a user's deposits, newest maturity first.
func (s *CDTService) List(ctx context.Context, userID string) ([]domain.Deposit, error) {
	return s.Store.Deposits().ListDepositsByUser(ctx, userID)
}

// ListActive returns a user's active deposits soonest-maturing first.
func (s *CDTService) ListActive(ctx context.Context, userID string) ([]domain.Deposit, error) {
	return s.Store.Deposits().ListActiveDeposits(ctx, userID)
}

// Update replaces the mutable fields of a deposit after an ownership check.
func (s *CDTService) Update(ctx context.Context, userID string, d domain.Deposit) (domain.Deposit, error) {
	existing, err := s.Get(ctx, userID, d.ID)
	if err != nil {
		return domain.Deposit{}, err
	}

	existing.BankName = d.BankName
	existing.Amount = d.Amount
	existing.AnnualRate = d.AnnualRate
	existing.StartDate = d.StartDate
	existing.MaturityDate = d.MaturityDate
	existing.WithholdingTax = d.WithholdingTax

	if err := s.Store.Deposits().UpdateDeposit(ctx, existing); err != nil {
		return domain.Deposit{}, err
	}
	return existing, nil
}

// ChangeStatus moves a deposit through its lifecycle. Only active deposits
// may transition, and only to matured or renewed.
func (s *CDTService) ChangeStatus(ctx context.Context, userID, depositID string, to domain.DepositStatus) error {
	d, err := s.Get(ctx, userID, depositID)
	if err != nil {
		return err
	}
	if !d.Status.CanTransition(to) {
		return ErrInvalidTransition
	}
	return s.Store.Deposits().UpdateDepositStatus(ctx, depositID, to)
}

// MarkAlertSent records that a maturity alert fired for a deposit.
func (s *CDTService) MarkAlertSent(ctx context.Context, depositID string) error {
	return s.Store.Deposits().MarkAlertSent(ctx, depositID)
}

// Delete removes a deposit after an ownership check.
func (s *CDTService) Delete(ctx context.Context, userID, depositID string) error {
	if _, err := s.Get(ctx, userID, depositID); err != nil {
		return err
	}
	return s.Store.Deposits().DeleteDeposit(ctx, depositID)
}
