package service

import (
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/pkg/finmath"
)

// SimulationService projects reinvestment scenarios month by month.
type SimulationService struct{}

// Project fills in the month-by-month projection for a simulation. The
// effective annual rate is converted to an effective monthly rate; the simple
// strategy accrues interest on the initial amount only while compound rolls
// each month's interest into the base. A zero start means now.
func (s *SimulationService) Project(sim domain.ReinvestmentSimulation, start time.Time) domain.ReinvestmentSimulation {
	if start.IsZero() {
		start = time.Now()
	}
	monthlyRate := finmath.AnnualToMonthly(sim.Rate) / 100

	sim.Projection = make([]domain.ProjectionPoint, 0, sim.TermMonths)
	value := sim.InitialAmount
	for month := 1; month <= sim.TermMonths; month++ {
		var interest float64
		switch sim.Strategy {
		case domain.StrategyCompound:
			interest = value * monthlyRate
			value += interest
		default:
			interest = sim.InitialAmount * monthlyRate
			value += interest
		}
		sim.Projection = append(sim.Projection, domain.ProjectionPoint{
			Date:     start.AddDate(0, month, 0),
			Value:    value,
			Interest: interest,
		})
	}
	return sim
}
