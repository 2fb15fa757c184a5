package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
	"github.com/amfajardoo/investment-manager/pkg/slogx"
)

type PensionsHandler struct {
	FPVService *service.FPVService
	TaxService *service.TaxBenefitService
}

type pensionRequest struct {
	InstitutionName string  `json:"institutionName"`
	CurrentValue    float64 `json:"currentValue"`
}

type contributionRequest struct {
	Date          time.Time `json:"date"`
	Amount        float64   `json:"amount"`
	MonthlyIncome float64   `json:"monthlyIncome"`
}

type valueRequest struct {
	Value float64   `json:"value"`
	AsOf  time.Time `json:"asOf"`
}

// HandleCreate opens a new pension account.
//
//	@Summary	Create a voluntary pension account
//	@Tags		Pensions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		pensionRequest	true	"Institution and opening value"
//	@Success	201		{object}	domain.PensionAccount
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/pensions [post].
func (h *PensionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req pensionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.InstitutionName == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "institutionName is required")
		return
	}
	if req.CurrentValue < 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "currentValue must not be negative")
		return
	}

	acct, err := h.FPVService.Create(ctx, httpx.UserIDFromContext(ctx), domain.PensionAccount{
		InstitutionName: req.InstitutionName,
		CurrentValue:    req.CurrentValue,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("pension create failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not create pension account")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, acct)
}

// HandleList returns the user's pension accounts with contributions.
//
//	@Summary	List pension accounts
//	@Tags		Pensions
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	domain.PensionAccount
//	@Router		/v1/pensions [get].
func (h *PensionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accts, err := h.FPVService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		slogx.FromContext(ctx).Error("pension list failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not list pension accounts")
		return
	}
	if accts == nil {
		accts = []domain.PensionAccount{}
	}
	httpx.WriteJSON(w, http.StatusOK, accts)
}

func (h *PensionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	acct, err := h.FPVService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writePensionError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, acct)
}

func (h *PensionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.FPVService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id")); err != nil {
		writePensionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddContribution records a contribution. The tax benefit is computed
// from the monthly income; the lock-up date from the contribution date.
//
//	@Summary	Add a contribution
//	@Tags		Pensions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		contributionRequest	true	"Contribution and the contributor's monthly income"
//	@Success	201		{object}	domain.Contribution
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/pensions/{id}/contributions [post].
func (h *PensionsHandler) HandleAddContribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contributionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.Amount <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return
	}

	c, err := h.FPVService.AddContribution(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), req.Date, req.Amount, req.MonthlyIncome)
	if err != nil {
		writePensionError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// HandleUpdateValue records a fresh statement value.
//
//	@Summary	Update the account value
//	@Tags		Pensions
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body	valueRequest	true	"Statement value and its date"
//	@Success	204
//	@Failure	400	{object}	httpx.ErrorResponse
//	@Router		/v1/pensions/{id}/value [put].
func (h *PensionsHandler) HandleUpdateValue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req valueRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.Value < 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "value must not be negative")
		return
	}

	if err := h.FPVService.UpdateValue(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), req.Value, req.AsOf); err != nil {
		writePensionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCalculation returns the account summary with the withdrawable split.
//
//	@Summary	Summarize a pension account
//	@Tags		Pensions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		asOf	query		string	false	"Valuation instant (RFC 3339); defaults to now"
//	@Success	200		{object}	domain.PensionCalculation
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/v1/pensions/{id}/calculation [get].
func (h *PensionsHandler) HandleCalculation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	acct, err := h.FPVService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writePensionError(w, err)
		return
	}

	asOf, ok := parseAsOf(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.FPVService.Calculate(acct, asOf))
}

// HandleTaxSavings estimates the income tax saved by a fiscal year's
// contributions.
//
//	@Summary	Estimate annual tax savings
//	@Tags		Pensions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		year	query		int	true	"Fiscal year"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/pensions/{id}/tax-savings [get].
func (h *PensionsHandler) HandleTaxSavings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "year must be an integer")
		return
	}

	acct, err := h.FPVService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writePensionError(w, err)
		return
	}

	savings := h.TaxService.AnnualTaxSavings(acct.Contributions, year)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"savings": savings,
	})
}

func writePensionError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, service.ErrNotOwner) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "pension account not found")
		return
	}
	httpx.WriteError(w, http.StatusInternalServerError, "server_error", "pension operation failed")
}
