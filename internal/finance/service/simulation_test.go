package service

import (
	"testing"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/stretchr/testify/require"
)

// effective annual rate whose monthly equivalent is exactly 1%
const onePercentMonthlyAnnual = 12.682503013196977

func TestSimulationProject(t *testing.T) {
	svc := &SimulationService{}
	start := date(2024, time.January, 1)

	t.Run("simple strategy accrues on the principal only", func(t *testing.T) {
		sim := svc.Project(domain.ReinvestmentSimulation{
			TermMonths:    12,
			Rate:          onePercentMonthlyAnnual,
			InitialAmount: 1000,
			Strategy:      domain.StrategySimple,
		}, start)

		require.Len(t, sim.Projection, 12)
		require.InDelta(t, 10, sim.Projection[0].Interest, 1e-6)
		require.InDelta(t, 10, sim.Projection[11].Interest, 1e-6)
		require.InDelta(t, 1120, sim.Projection[11].Value, 1e-6)
	})

	t.Run("compound strategy reinvests each month", func(t *testing.T) {
		sim := svc.Project(domain.ReinvestmentSimulation{
			TermMonths:    12,
			Rate:          onePercentMonthlyAnnual,
			InitialAmount: 1000,
			Strategy:      domain.StrategyCompound,
		}, start)

		require.InDelta(t, 10, sim.Projection[0].Interest, 1e-6)
		require.Greater(t, sim.Projection[11].Interest, sim.Projection[0].Interest)
		require.InDelta(t, 1126.825, sim.Projection[11].Value, 0.001)
	})

	t.Run("projection dates step month by month", func(t *testing.T) {
		sim := svc.Project(domain.ReinvestmentSimulation{
			TermMonths:    3,
			Rate:          10,
			InitialAmount: 1000,
			Strategy:      domain.StrategyCompound,
		}, start)

		require.Equal(t, date(2024, time.February, 1), sim.Projection[0].Date)
		require.Equal(t, date(2024, time.April, 1), sim.Projection[2].Date)
	})

	t.Run("zero term yields an empty projection", func(t *testing.T) {
		sim := svc.Project(domain.ReinvestmentSimulation{
			TermMonths:    0,
			Rate:          10,
			InitialAmount: 1000,
		}, start)

		require.Empty(t, sim.Projection)
	})
}
