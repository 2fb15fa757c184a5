package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
	"github.com/amfajardoo/investment-manager/pkg/slogx"
)

type DepositsHandler struct {
	CDTService *service.CDTService
}

type depositRequest struct {
	BankName       string    `json:"bankName"`
	Amount         float64   `json:"amount"`
	AnnualRate     float64   `json:"annualRate"`
	StartDate      time.Time `json:"startDate"`
	MaturityDate   time.Time `json:"maturityDate"`
	WithholdingTax float64   `json:"withholdingTax"`
}

type statusRequest struct {
	Status domain.DepositStatus `json:"status"`
}

func (req depositRequest) validate() string {
	switch {
	case req.BankName == "":
		return "bankName is required"
	case req.Amount <= 0:
		return "amount must be positive"
	case req.AnnualRate < 0:
		return "annualRate must not be negative"
	case req.StartDate.IsZero() || req.MaturityDate.IsZero():
		return "startDate and maturityDate are required"
	case !req.MaturityDate.After(req.StartDate):
		return "maturityDate must be after startDate"
	case req.WithholdingTax < 0 || req.WithholdingTax > 100:
		return "withholdingTax must be a percentage"
	default:
		return ""
	}
}

func (req depositRequest) toDomain() domain.Deposit {
	return domain.Deposit{
		BankName:       req.BankName,
		Amount:         req.Amount,
		AnnualRate:     req.AnnualRate,
		StartDate:      req.StartDate,
		MaturityDate:   req.MaturityDate,
		WithholdingTax: req.WithholdingTax,
	}
}

// HandleCreate registers a new deposit.
//
//	@Summary	Create a fixed-term deposit
//	@Tags		Deposits
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		depositRequest	true	"Deposit terms"
//	@Success	201		{object}	domain.Deposit
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/deposits [post].
func (h *DepositsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req depositRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	d, err := h.CDTService.Create(ctx, httpx.UserIDFromContext(ctx), req.toDomain())
	if err != nil {
		slogx.FromContext(ctx).Error("deposit create failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not create deposit")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, d)
}

// HandleList returns all of the user's deposits.
//
//	@Summary	List deposits
//	@Tags		Deposits
//	@Security	BearerAuth
//	@Produce	json
//	@Param		active	query		bool	false	"Only active deposits, soonest maturity first"
//	@Success	200		{array}		domain.Deposit
//	@Router		/v1/deposits [get].
func (h *DepositsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var (
		deposits []domain.Deposit
		err      error
	)
	if r.URL.Query().Get("active") == "true" {
		deposits, err = h.CDTService.ListActive(ctx, userID)
	} else {
		deposits, err = h.CDTService.List(ctx, userID)
	}
	if err != nil {
		slogx.FromContext(ctx).Error("deposit list failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not list deposits")
		return
	}
	if deposits == nil {
		deposits = []domain.Deposit{}
	}
	httpx.WriteJSON(w, http.StatusOK, deposits)
}

func (h *DepositsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := h.CDTService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeDepositError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *DepositsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req depositRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	d := req.toDomain()
	d.ID = r.PathValue("id")
	updated, err := h.CDTService.Update(ctx, httpx.UserIDFromContext(ctx), d)
	if err != nil {
		writeDepositError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *DepositsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CDTService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id")); err != nil {
		writeDepositError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCalculation returns the point-in-time earnings breakdown.
//
//	@Summary	Project deposit earnings
//	@Tags		Deposits
//	@Security	BearerAuth
//	@Produce	json
//	@Param		asOf	query		string	false	"Valuation instant (RFC 3339); defaults to now"
//	@Success	200		{object}	domain.DepositCalculation
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/v1/deposits/{id}/calculation [get].
func (h *DepositsHandler) HandleCalculation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := h.CDTService.Get(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeDepositError(w, err)
		return
	}

	asOf, ok := parseAsOf(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.CDTService.Calculate(d, asOf))
}

// HandleChangeStatus moves a deposit to matured or renewed.
//
//	@Summary	Change deposit status
//	@Tags		Deposits
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body	statusRequest	true	"Target status"
//	@Success	204
//	@Failure	409	{object}	httpx.ErrorResponse	"Transition not allowed"
//	@Router		/v1/deposits/{id}/status [post].
func (h *DepositsHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	err := h.CDTService.ChangeStatus(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			httpx.WriteError(w, http.StatusConflict, "invalid_status_transition", "only active deposits can be matured or renewed")
			return
		}
		writeDepositError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDepositError maps ownership and lookup failures onto 404. Hiding the
// distinction keeps other users' deposit ids unprobeable.
func writeDepositError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, service.ErrNotOwner) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "deposit not found")
		return
	}
	httpx.WriteError(w, http.StatusInternalServerError, "server_error", "deposit operation failed")
}

// parseAsOf reads the optional asOf query parameter. Reports false after
// writing the error response when the value is malformed.
func parseAsOf(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("asOf")
	if raw == "" {
		return time.Time{}, true
	}
	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "asOf must be RFC 3339")
		return time.Time{}, false
	}
	return asOf, true
}
