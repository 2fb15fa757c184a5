// Package finmath provides the pure date and compound-interest arithmetic
// shared by the deposit and pension engines. All rates are expressed in
// percent units (10 means 10%) and no rounding is applied; formatting for
// display is a caller concern.
package finmath

import (
	"math"
	"time"
)

// DaysPerYear is the day-count basis used for fractional-period compounding.
const DaysPerYear = 365

// MonthsPerYear is the compounding period count for monthly rate conversions.
const MonthsPerYear = 12

// DaysBetween returns the number of whole days from start to end, rounding
// any partial day up. The result is negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// ElapsedDays returns the elapsed and total day counts for a term running
// from start to maturity, evaluated at asOf. Elapsed is clamped to
// [0, total]: a term never "elapses" past its own maturity, and nothing
// elapses before the term starts.
func ElapsedDays(start, maturity, asOf time.Time) (elapsed, total int) {
	total = DaysBetween(start, maturity)
	elapsed = DaysBetween(start, asOf)
	if elapsed > total {
		elapsed = total
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, total
}

// CompoundFactor returns the fractional-period effective return for an
// effective annual rate held over elapsedDays of a basisDays year:
// (1 + rate/100)^(elapsed/basis) - 1.
func CompoundFactor(annualRatePercent float64, elapsedDays, basisDays int) float64 {
	return math.Pow(1+annualRatePercent/100, float64(elapsedDays)/float64(basisDays)) - 1
}

// AnnualToMonthly converts an effective annual rate to its effective monthly
// equivalent, both in percent.
func AnnualToMonthly(annualRatePercent float64) float64 {
	return (math.Pow(1+annualRatePercent/100, 1.0/MonthsPerYear) - 1) * 100
}

// MonthlyToAnnual converts an effective monthly rate to its effective annual
// equivalent, both in percent.
func MonthlyToAnnual(monthlyRatePercent float64) float64 {
	return (math.Pow(1+monthlyRatePercent/100, MonthsPerYear) - 1) * 100
}

// NominalToAnnual converts a nominal rate compounded periodsPerYear times to
// an effective annual rate, both in percent. Callers are responsible for
// passing periodsPerYear >= 1.
func NominalToAnnual(nominalRatePercent float64, periodsPerYear int) float64 {
	p := float64(periodsPerYear)
	return (math.Pow(1+nominalRatePercent/(100*p), p) - 1) * 100
}
