package http

import (
	"net/http"

	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
	"github.com/amfajardoo/investment-manager/pkg/slogx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
}

// ServeHTTP returns the portfolio summary across deposits and pensions.
//
//	@Summary	Portfolio dashboard
//	@Tags		Dashboard
//	@Security	BearerAuth
//	@Produce	json
//	@Param		asOf	query		string	false	"Valuation instant (RFC 3339); defaults to now"
//	@Success	200		{object}	domain.DashboardMetrics
//	@Failure	500		{object}	httpx.ErrorResponse
//	@Router		/v1/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	asOf, ok := parseAsOf(w, r)
	if !ok {
		return
	}

	metrics, err := h.DashboardService.Metrics(ctx, httpx.UserIDFromContext(ctx), asOf)
	if err != nil {
		slogx.FromContext(ctx).Error("dashboard aggregation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not build dashboard")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, metrics)
}
