package http

import (
	"net/http"
	"time"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
	"github.com/amfajardoo/investment-manager/internal/finance/service"
	"github.com/amfajardoo/investment-manager/pkg/httpx"
	"github.com/amfajardoo/investment-manager/pkg/jwtx"
	"github.com/amfajardoo/investment-manager/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Signer      *jwtx.Signer
	Issuer      string
	SessionTTL  time.Duration
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type displayNameRequest struct {
	DisplayName string `json:"displayName"`
}

// AuthResponse is the uniform auth endpoint payload: the outcome plus a
// session token on success.
type AuthResponse struct {
	Success   bool                `json:"success"`
	Error     *domain.AuthError   `json:"error,omitempty"`
	User      *domain.UserProfile `json:"user,omitempty"`
	Token     string              `json:"token,omitempty"`
	ExpiresIn int64               `json:"expiresIn,omitempty"`
}

// HandleRegister creates an account and signs the user in.
//
//	@Summary		Register a new account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		credentialsRequest	true	"Email, password, and optional display name"
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	AuthResponse	"Field-scoped auth error"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	outcome := h.AuthService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	h.writeOutcome(w, r, outcome, http.StatusCreated, http.StatusBadRequest)
}

// HandleLogin signs a user in with email and password.
//
//	@Summary		Sign in with email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		credentialsRequest	true	"Email and password"
//	@Success		200		{object}	AuthResponse
//	@Failure		401		{object}	AuthResponse	"Field-scoped auth error"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	outcome := h.AuthService.Login(r.Context(), req.Email, req.Password)
	h.writeOutcome(w, r, outcome, http.StatusOK, http.StatusUnauthorized)
}

// HandleGoogle runs the federated popup sign-in flow.
//
//	@Summary		Sign in with Google
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthResponse
//	@Failure		401	{object}	AuthResponse	"Field-scoped auth error"
//	@Router			/v1/auth/google [post].
func (h *AuthHandler) HandleGoogle(w http.ResponseWriter, r *http.Request) {
	outcome := h.AuthService.LoginWithGoogle(r.Context())
	h.writeOutcome(w, r, outcome, http.StatusOK, http.StatusUnauthorized)
}

// HandleLogout clears the session. Always succeeds from the caller's side.
//
//	@Summary	Sign out
//	@Tags		Auth
//	@Security	BearerAuth
//	@Success	204
//	@Router		/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.AuthService.Logout(ctx, httpx.UserIDFromContext(ctx))
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the authenticated user's profile.
//
//	@Summary	Get the signed-in profile
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	domain.UserProfile
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := httpx.UserIDFromContext(ctx)

	profile, err := h.AuthService.LoadUserProfile(ctx, uid)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to load profile", "uid", uid, "err", err)
		httpx.WriteError(w, http.StatusNotFound, "profile_not_found", "no profile for this session")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile)
}

// HandleUpdateDisplayName renames the signed-in user.
//
//	@Summary	Update the display name
//	@Tags		Auth
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		displayNameRequest	true	"New display name"
//	@Success	200		{object}	domain.UserProfile
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/auth/display-name [patch].
func (h *AuthHandler) HandleUpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := httpx.UserIDFromContext(ctx)

	var req displayNameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.DisplayName == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "displayName is required")
		return
	}

	if err := h.AuthService.UpdateDisplayName(ctx, uid, req.DisplayName); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "update_failed", "could not update display name")
		return
	}

	profile, err := h.AuthService.LoadUserProfile(ctx, uid)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "profile reload failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) writeOutcome(w http.ResponseWriter, r *http.Request, outcome domain.AuthOutcome, okStatus, failStatus int) {
	resp := AuthResponse{
		Success: outcome.Success,
		Error:   outcome.Error,
		User:    outcome.User,
	}
	if !outcome.Success {
		if outcome.Error != nil && outcome.Error.Code == domain.CodeInProgress {
			failStatus = http.StatusTooManyRequests
		}
		httpx.WriteJSON(w, failStatus, resp)
		return
	}

	now := time.Now()
	claims := jwtx.NewSessionClaims(outcome.User.UID, outcome.User.Email, outcome.User.DisplayName, h.Issuer, h.SessionTTL, now)
	token, err := h.Signer.Sign(claims)
	if err != nil {
		slogx.FromContext(r.Context()).Error("token signing failed", "uid", outcome.User.UID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not mint session token")
		return
	}
	resp.Token = token
	resp.ExpiresIn = int64(h.SessionTTL.Seconds())

	httpx.WriteJSON(w, okStatus, resp)
}
