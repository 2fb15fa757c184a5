package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/internal/finance/store"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
	"github.com/amfajardoo/investment-manager/pkg/jwtx"
	"github.com/amfajardoo/investment-manager/pkg/slogx"

	_ "github.com/amfajardoo/investment-manager/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	verifier     *jwtx.Verifier
	issuer       string
	sessionTTL   time.Duration
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	CDTService        *service.CDTService
	FPVService        *service.FPVService
	TaxService        *service.TaxBenefitService
	DashboardService  *service.DashboardService
	SimulationService *service.SimulationService
}

func NewRouter(
	signer *jwtx.Signer,
	verifier *jwtx.Verifier,
	issuer, buildVersion string,
	sessionTTL time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		issuer:       issuer,
		sessionTTL:   sessionTTL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerDeposits()
	r.registerPensions()
	r.registerPortfolio()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Investment Manager API
//	@version		0.1.0
//	@description	Personal finance engine for Colombian fixed-term deposits (CDT) and
//	@description	voluntary pension funds (FPV): earnings projections, tax benefit math,
//	@description	portfolio metrics, and reinvestment simulations.
//
//	@contact.name				Investment Manager
//	@contact.url				https://github.com/amfajardoo/investment-manager
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Signer:      r.signer,
		Issuer:      r.issuer,
		SessionTTL:  r.sessionTTL,
	}

	// Credential endpoints take JSON bodies, so rate limiting keys on IP
	// only; a form-field key would consume the body before the handler.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/google",
		httpx.Chain(http.HandlerFunc(h.HandleGoogle),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/auth/display-name",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateDisplayName),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDeposits() {
	h := &DepositsHandler{CDTService: r.CDTService}

	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /v1/deposits", secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/deposits", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/deposits/{id}", secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/deposits/{id}", secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/deposits/{id}", secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/deposits/{id}/calculation", secured(h.HandleCalculation, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/deposits/{id}/status", secured(h.HandleChangeStatus, httpx.ModerateLimit))
}

func (r *Router) registerPensions() {
	h := &PensionsHandler{FPVService: r.FPVService, TaxService: r.TaxService}

	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /v1/pensions", secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/pensions", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/pensions/{id}", secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/pensions/{id}", secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/pensions/{id}/contributions", secured(h.HandleAddContribution, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/pensions/{id}/value", secured(h.HandleUpdateValue, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/pensions/{id}/calculation", secured(h.HandleCalculation, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/pensions/{id}/tax-savings", secured(h.HandleTaxSavings, httpx.LenientLimit))
}

func (r *Router) registerPortfolio() {
	dashboardHandler := &DashboardHandler{DashboardService: r.DashboardService}
	r.Mux.Handle("GET /v1/dashboard",
		httpx.Chain(dashboardHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	simulationHandler := &SimulationHandler{SimulationService: r.SimulationService}
	r.Mux.Handle("POST /v1/simulations/reinvestment",
		httpx.Chain(simulationHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Rate conversions and tax quotes are pure math; they stay public with an
	// IP limit.
	ratesHandler := &RatesHandler{}
	r.Mux.Handle("GET /v1/rates/convert",
		httpx.Chain(ratesHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	quoteHandler := &TaxBenefitQuoteHandler{TaxService: r.TaxService}
	r.Mux.Handle("GET /v1/tax-benefit/quote",
		httpx.Chain(quoteHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
