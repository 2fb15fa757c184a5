package domain

import "time"

// Contribution is a single deposit into a voluntary pension fund (FPV).
// Withdrawable is derived from WithdrawableDate at evaluation time and must
// never be trusted as stored truth.
type Contribution struct {
	ID               string     `json:"id"`
	Date             time.Time  `json:"date"`
	Amount           float64    `json:"amount"`
	TaxBenefit       float64    `json:"taxBenefit"` // attributed at contribution time
	Withdrawable     bool       `json:"withdrawable"`
	WithdrawableDate *time.Time `json:"withdrawableDate,omitempty"` // contribution date + lock-up period
}

// PensionAccount is a voluntary pension fund (FPV) account. CurrentValue is
// reported by the fund and tracked independently of the contribution sum; the
// two diverge with market performance.
type PensionAccount struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	InstitutionName string         `json:"institutionName"`
	Contributions   []Contribution `json:"contributions"`
	CurrentValue    float64        `json:"currentValue"`
	LastUpdateDate  time.Time      `json:"lastUpdateDate"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// PensionCalculation summarizes an account's returns, tax benefits and the
// withdrawable/non-withdrawable split of its current value.
type PensionCalculation struct {
	TotalContributions        float64 `json:"totalContributions"`
	CurrentValue              float64 `json:"currentValue"`
	AbsoluteReturn            float64 `json:"absoluteReturn"`
	ReturnPercentage          float64 `json:"returnPercentage"`
	TotalTaxBenefit           float64 `json:"totalTaxBenefit"`
	WithdrawableAmount        float64 `json:"withdrawableAmount"`
	NonWithdrawableAmount     float64 `json:"nonWithdrawableAmount"`
	WithdrawableContributions int     `json:"withdrawableContributions"`
}
