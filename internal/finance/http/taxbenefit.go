package http

import (
	"net/http"
	"strconv"

	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
)

// TaxBenefitQuoteHandler quotes the deductible portion of a hypothetical
// contribution without touching any account.
type TaxBenefitQuoteHandler struct {
	TaxService *service.TaxBenefitService
}

type taxBenefitQuote struct {
	Amount        float64 `json:"amount"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	Benefit       float64 `json:"benefit"`
	AnnualSavings float64 `json:"annualSavings"`
}

// ServeHTTP quotes a contribution's tax benefit.
//
//	@Summary	Quote a contribution's tax benefit
//	@Tags		TaxBenefit
//	@Produce	json
//	@Param		amount	query		number	true	"Contribution amount"
//	@Param		income	query		number	true	"Monthly income"
//	@Success	200		{object}	taxBenefitQuote
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/tax-benefit/quote [get].
func (h *TaxBenefitQuoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "amount must be a number")
		return
	}
	income, err := strconv.ParseFloat(q.Get("income"), 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "income must be a number")
		return
	}

	benefit := h.TaxService.ContributionBenefit(amount, income)
	httpx.WriteJSON(w, http.StatusOK, taxBenefitQuote{
		Amount:        amount,
		MonthlyIncome: income,
		Benefit:       benefit,
		AnnualSavings: benefit * 12 * h.TaxService.Config.MarginalRate,
	})
}
