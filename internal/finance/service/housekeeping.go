package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
)

// HousekeepingService is the background sweep over active deposits: it
// matures deposits past their maturity date and fires one maturity alert per
// deposit inside the alert window.
type HousekeepingService struct {
	Store    store.Store
	CDT      *CDTService
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new sweep with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, cdt *CDTService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		CDT:      cdt,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run the sweep immediately on startup
	s.Sweep(context.Background(), time.Now())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background(), time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep walks every active deposit once. Each deposit is handled
// independently - a failure on one does not stop the others.
func (s *HousekeepingService) Sweep(ctx context.Context, asOf time.Time) {
	deposits, err := s.Store.Deposits().ListAllActiveDeposits(ctx)
	if err != nil {
		s.Logger.Error("sweep failed to list active deposits", "error", err)
		return
	}

	var matured, alerted int
	for _, d := range deposits {
		if !asOf.Before(d.MaturityDate) {
			if err := s.Store.Deposits().UpdateDepositStatus(ctx, d.ID, domain.DepositMatured); err != nil {
				s.Logger.Error("failed to mature deposit", "deposit_id", d.ID, "error", err)
				continue
			}
			matured++
			continue
		}

		if s.CDT.ShouldAlert(d, asOf) {
			s.Logger.Info("deposit approaching maturity",
				"deposit_id", d.ID,
				"user_id", d.UserID,
				"bank", d.BankName,
				"days_left", s.CDT.DaysUntilExpiration(d, asOf))
			if err := s.Store.Deposits().MarkAlertSent(ctx, d.ID); err != nil {
				s.Logger.Error("failed to mark alert sent", "deposit_id", d.ID, "error", err)
				continue
			}
			alerted++
		}
	}

	s.Logger.Info("sweep completed", "active", len(deposits), "matured", matured, "alerted", alerted)
}
