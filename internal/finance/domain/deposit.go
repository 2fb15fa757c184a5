package domain

import "time"

// DepositStatus is the lifecycle state of a fixed-term deposit (CDT).
type DepositStatus string

const (
	DepositActive  DepositStatus = "active"
	DepositMatured DepositStatus = "matured"
	DepositRenewed DepositStatus = "renewed"
)

// CanTransition reports whether a status change is allowed. Deposits only
// move forward: active -> matured or active -> renewed.
func (s DepositStatus) CanTransition(to DepositStatus) bool {
	return s == DepositActive && (to == DepositMatured || to == DepositRenewed)
}

// Deposit is a fixed-term deposit (CDT).
type Deposit struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	BankName       string        `json:"bankName"`
	Amount         float64       `json:"amount"`
	AnnualRate     float64       `json:"annualRate"` // effective annual rate, percent
	StartDate      time.Time     `json:"startDate"`
	MaturityDate   time.Time     `json:"maturityDate"`
	WithholdingTax float64       `json:"withholdingTax"` // percent withheld at source
	Status         DepositStatus `json:"status"`
	AlertSent      bool          `json:"alertSent"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// DepositCalculation is the point-in-time earnings breakdown for a deposit.
type DepositCalculation struct {
	InitialAmount  float64 `json:"initialAmount"`
	GrossEarnings  float64 `json:"grossEarnings"`
	WithholdingTax float64 `json:"withholdingTax"`
	NetEarnings    float64 `json:"netEarnings"`
	FinalAmount    float64 `json:"finalAmount"`
	DaysElapsed    int     `json:"daysElapsed"`
	TotalDays      int     `json:"totalDays"`
	EffectiveRate  float64 `json:"effectiveRate"` // realized period rate, percent
}
