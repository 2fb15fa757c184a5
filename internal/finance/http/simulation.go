package http

import (
	"net/http"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
)

type SimulationHandler struct {
	SimulationService *service.SimulationService
}

type simulationRequest struct {
	TermMonths    int                         `json:"termMonths"`
	Rate          float64                     `json:"rate"`
	InitialAmount float64                     `json:"initialAmount"`
	Strategy      domain.ReinvestmentStrategy `json:"strategy"`
	Start         time.Time                   `json:"start"`
}

// ServeHTTP projects a reinvestment scenario month by month.
//
//	@Summary	Simulate a reinvestment
//	@Tags		Simulations
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		simulationRequest	true	"Term, effective annual rate, amount, and strategy"
//	@Success	200		{object}	domain.ReinvestmentSimulation
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/simulations/reinvestment [post].
func (h *SimulationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.TermMonths <= 0 || req.TermMonths > 600 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "termMonths must be between 1 and 600")
		return
	}
	if req.InitialAmount <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "initialAmount must be positive")
		return
	}
	switch req.Strategy {
	case domain.StrategySimple, domain.StrategyCompound:
	default:
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "strategy must be simple or compound")
		return
	}

	sim := h.SimulationService.Project(domain.ReinvestmentSimulation{
		TermMonths:    req.TermMonths,
		Rate:          req.Rate,
		InitialAmount: req.InitialAmount,
		Strategy:      req.Strategy,
	}, req.Start)
	httpx.WriteJSON(w, http.StatusOK, sim)
}
