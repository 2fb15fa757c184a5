package http

import (
	"net/http"
	"strconv"

	"github.com/amfajardoo/investment-manager/pkg/finmath"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
)

// RatesHandler converts between interest rate conventions.
type RatesHandler struct{}

type rateConversion struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Input float64 `json:"input"`
	Rate  float64 `json:"rate"`
}

// ServeHTTP converts a rate between conventions.
//
//	@Summary	Convert an interest rate
//	@Description	Supported conversions: ea-to-em (effective annual to effective
//	@Description	monthly), em-to-ea, and nv-to-ea (nominal with a periods query
//	@Description	parameter, default 12).
//	@Tags		Rates
//	@Produce	json
//	@Param		from	query		string	true	"Conversion: ea-to-em, em-to-ea, nv-to-ea"
//	@Param		rate	query		number	true	"Rate in percent"
//	@Param		periods	query		int		false	"Compounding periods per year for nv-to-ea"
//	@Success	200		{object}	rateConversion
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/rates/convert [get].
func (h *RatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input, err := strconv.ParseFloat(q.Get("rate"), 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "rate must be a number")
		return
	}

	out := rateConversion{Input: input}
	switch q.Get("from") {
	case "ea-to-em":
		out.From, out.To = "ea", "em"
		out.Rate = finmath.AnnualToMonthly(input)
	case "em-to-ea":
		out.From, out.To = "em", "ea"
		out.Rate = finmath.MonthlyToAnnual(input)
	case "nv-to-ea":
		periods := finmath.MonthsPerYear
		if raw := q.Get("periods"); raw != "" {
			periods, err = strconv.Atoi(raw)
			if err != nil || periods < 1 {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "periods must be a positive integer")
				return
			}
		}
		out.From, out.To = "nv", "ea"
		out.Rate = finmath.NominalToAnnual(input, periods)
	default:
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "from must be ea-to-em, em-to-ea, or nv-to-ea")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
