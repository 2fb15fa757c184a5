package domain

import "time"

// ReinvestmentStrategy selects how projected interest is handled.
type ReinvestmentStrategy string

const (
	// StrategySimple accrues interest on the initial amount only.
	StrategySimple ReinvestmentStrategy = "simple"
	// StrategyCompound reinvests interest into the running balance.
	StrategyCompound ReinvestmentStrategy = "compound"
)

// ProjectionPoint is one month of a reinvestment projection.
type ProjectionPoint struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Interest float64   `json:"interest"`
}

// ReinvestmentSimulation projects a deposit's growth over a term at an
// effective annual rate.
type ReinvestmentSimulation struct {
	TermMonths    int                  `json:"termMonths"`
	Rate          float64              `json:"rate"` // effective annual, percent
	InitialAmount float64              `json:"initialAmount"`
	Strategy      ReinvestmentStrategy `json:"strategy"`
	Projection    []ProjectionPoint    `json:"projection"`
}
