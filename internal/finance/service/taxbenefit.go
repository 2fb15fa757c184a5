package service

import (
	"math"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
)

// TaxBenefitConfig carries the Colombian tax parameters the benefit math runs
// on. Values change yearly by decree, so they are injected rather than baked
// into the math.
type TaxBenefitConfig struct {
	// UVTValue is the peso value of one UVT (tax value unit).
	UVTValue float64

	// MonthlyLimitUVT caps the deductible contribution in UVT per month.
	MonthlyLimitUVT float64

	// IncomeFraction caps the deductible contribution as a share of monthly
	// income.
	IncomeFraction float64

	// MarginalRate is the top marginal income tax rate applied when
	// estimating annual savings.
	MarginalRate float64
}

// DefaultTaxBenefitConfig returns the 2024 parameters.
func DefaultTaxBenefitConfig() TaxBenefitConfig {
	return TaxBenefitConfig{
		UVTValue:        47065,
		MonthlyLimitUVT: 100,
		IncomeFraction:  0.3,
		MarginalRate:    0.35,
	}
}

// TaxBenefitService computes the deductible portion of voluntary pension
// contributions and the resulting income tax savings.
type TaxBenefitService struct {
	Config TaxBenefitConfig
}

// ContributionBenefit returns the deductible amount for a single monthly
// contribution: the smallest of the contribution itself, the UVT cap, and the
// income-fraction cap. Inputs flow through the arithmetic unvalidated, so the
// result never exceeds the amount, even for zero or negative inputs.
func (s *TaxBenefitService) ContributionBenefit(amount, monthlyIncome float64) float64 {
	uvtCap := s.Config.MonthlyLimitUVT * s.Config.UVTValue
	incomeCap := s.Config.IncomeFraction * monthlyIncome
	return math.Min(amount, math.Min(uvtCap, incomeCap))
}

// AnnualTaxSavings estimates the tax saved in a fiscal year from the recorded
// benefits of that year's contributions, at the configured marginal rate.
func (s *TaxBenefitService) AnnualTaxSavings(contributions []domain.Contribution, fiscalYear int) float64 {
	var deductible float64
	for _, c := range contributions {
		if c.Date.Year() == fiscalYear {
			deductible += c.TaxBenefit
		}
	}
	return deductible * s.Config.MarginalRate
}
