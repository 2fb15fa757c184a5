package service

import (
	"context"
	"sort"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
)

// DashboardService aggregates deposits and pension accounts into portfolio
// metrics.
type DashboardService struct {
	CDT *CDTService
	FPV *FPVService

	// InflationRate is the annual inflation in percent used for the real
	// return figure.
	InflationRate float64
}

// Metrics builds the portfolio summary for a user as of the given instant.
// A zero asOf means now.
func (s *DashboardService) Metrics(ctx context.Context, userID string, asOf time.Time) (domain.DashboardMetrics, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	deposits, err := s.CDT.List(ctx, userID)
	if err != nil {
		return domain.DashboardMetrics{}, err
	}
	accounts, err := s.FPV.List(ctx, userID)
	if err != nil {
		return domain.DashboardMetrics{}, err
	}

	var m domain.DashboardMetrics
	var cdtValue, fpvValue float64
	var weightedRate, activePrincipal float64
	window := s.CDT.alertWindow()

	for _, d := range deposits {
		if d.Status != domain.DepositActive {
			continue
		}
		calc := s.CDT.Calculate(d, asOf)
		m.TotalInvested += d.Amount
		cdtValue += calc.FinalAmount
		weightedRate += d.AnnualRate * d.Amount
		activePrincipal += d.Amount

		if days := s.CDT.DaysUntilExpiration(d, asOf); days > 0 && days <= window {
			m.UpcomingMaturities = append(m.UpcomingMaturities, d)
		}
	}
	sort.Slice(m.UpcomingMaturities, func(i, j int) bool {
		return m.UpcomingMaturities[i].MaturityDate.Before(m.UpcomingMaturities[j].MaturityDate)
	})

	for _, acct := range accounts {
		calc := s.FPV.Calculate(acct, asOf)
		m.TotalInvested += calc.TotalContributions
		fpvValue += calc.CurrentValue
		m.TotalTaxBenefits += calc.TotalTaxBenefit
		m.TotalWithdrawable += calc.WithdrawableAmount
		m.TotalNonWithdrawable += calc.NonWithdrawableAmount
	}

	m.PortfolioValue = cdtValue + fpvValue
	m.TotalEarnings = m.PortfolioValue - m.TotalInvested
	if m.TotalInvested > 0 {
		m.ReturnPercentage = m.TotalEarnings / m.TotalInvested * 100
	}
	if activePrincipal > 0 {
		m.AnnualizedReturn = weightedRate / activePrincipal
		m.RealReturn = ((1+m.AnnualizedReturn/100)/(1+s.InflationRate/100) - 1) * 100
	}

	if m.PortfolioValue > 0 {
		m.Distribution = domain.Distribution{
			CDTs: cdtValue / m.PortfolioValue * 100,
			FPV:  fpvValue / m.PortfolioValue * 100,
		}
	}
	return m, nil
}
