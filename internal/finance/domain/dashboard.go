package domain

// Distribution is the portfolio split between deposit and pension holdings,
// in percent of portfolio value.
type Distribution struct {
	CDTs float64 `json:"cdts"`
	FPV  float64 `json:"fpv"`
}

// DashboardMetrics aggregates a user's whole portfolio for the dashboard
// view.
type DashboardMetrics struct {
	TotalInvested        float64      `json:"totalInvested"`
	PortfolioValue       float64      `json:"portfolioValue"`
	TotalEarnings        float64      `json:"totalEarnings"`
	ReturnPercentage     float64      `json:"returnPercentage"`
	AnnualizedReturn     float64      `json:"annualizedReturn"` // principal-weighted active CDT rate, percent
	RealReturn           float64      `json:"realReturn"`       // annualized return deflated by the inflation assumption
	Distribution         Distribution `json:"distribution"`
	TotalTaxBenefits     float64      `json:"totalTaxBenefits"`
	TotalWithdrawable    float64      `json:"totalWithdrawable"`
	TotalNonWithdrawable float64      `json:"totalNonWithdrawable"`
	UpcomingMaturities   []Deposit    `json:"upcomingMaturities"`
}
