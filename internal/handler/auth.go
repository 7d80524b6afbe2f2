package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/xid"
	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/auth"
	"github.com/sakif/game-wiki/internal/service"
)

// AuthHandler exposes the credential endpoints and the OAuth login flow.
//
// ENDPOINTS:
//   - HandleSignup         → register a new account (no session issued)
//   - HandleLogin          → verify credentials, set the session cookie
//   - HandleLogout         → clear the session cookie
//   - HandleMe             → decode the session cookie into id/email
//   - HandleForgotPassword → issue a password-reset token
//   - HandleResetPassword  → redeem a reset token for a new password
//   - HandleOAuthLogin     → redirect to the chosen provider
//   - HandleOAuthCallback  → complete the provider round trip, set cookie
type AuthHandler struct {
	service    *service.AuthService
	providers  map[string]*auth.Provider
	production bool
	baseURL    string
	logger     *slog.Logger
}

// NewAuthHandler creates an AuthHandler. providers maps provider name to its
// configured OAuth client; unconfigured providers are simply absent.
func NewAuthHandler(
	svc *service.AuthService,
	providers map[string]*auth.Provider,
	production bool,
	baseURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		service:    svc,
		providers:  providers,
		production: production,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// setSessionCookie emits the session token as an HttpOnly, SameSite=Lax
// cookie covering the whole site. Secure is set in production only, so local
// HTTP development keeps working.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, rememberMe bool) {
	maxAge := auth.SessionDuration
	if rememberMe {
		maxAge = auth.RememberDuration
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie tells the browser to drop the session cookie immediately.
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleSignup registers a new account.
//
// HTTP: POST /api/auth/signup
//
// No session is established — the client logs in afterwards. That keeps the
// signup path free of cookie side effects and makes it safe to retry.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "요청 본문이 올바르지 않습니다"))
		return
	}

	user, err := h.service.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, "회원가입이 완료되었습니다")
}

// HandleLogin verifies credentials and issues the session cookie.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "요청 본문이 올바르지 않습니다"))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token, result.RememberMe)
	writeSuccess(w, http.StatusOK, result.User, "로그인 성공")
}

// HandleLogout clears the session cookie. Always succeeds — logging out
// twice is fine.
//
// HTTP: POST /api/auth/logout
//
// Stateless sessions mean "logout" is purely client-side: the token stays
// technically valid until expiry, but without the cookie the browser can't
// send it.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	writeSuccess(w, http.StatusOK, nil, "로그아웃되었습니다")
}

// HandleMe returns the id/email carried by the session cookie.
//
// HTTP: GET /api/auth/me
//
// An invalid or expired token also clears the cookie, so the browser stops
// resending a credential that can never work.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, apperror.Unauthorized("로그인이 필요합니다"))
		return
	}

	sess, err := h.service.CurrentUser(cookie.Value)
	if err != nil {
		h.clearSessionCookie(w)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{
		"id":    sess.UserID,
		"email": sess.Email,
	}, "")
}

// HandleForgotPassword issues a password-reset token.
//
// HTTP: POST /api/auth/forgot-password
//
// The response message is identical whether or not the email is registered.
// Outside production the token and reset URL ride along in the response as a
// stand-in for sending email.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "요청 본문이 올바르지 않습니다"))
		return
	}

	ticket, err := h.service.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	data := map[string]any{}
	if ticket != nil {
		data["expiresAt"] = ticket.ExpiresAt.Format(time.RFC3339)
		if !h.production {
			data["resetToken"] = ticket.Token
			data["resetUrl"] = h.baseURL + "/auth/reset-password?token=" + ticket.Token
		}
	}

	writeSuccess(w, http.StatusOK, data, "비밀번호 재설정 안내를 이메일로 발송했습니다")
}

// HandleResetPassword redeems a reset token for a new password.
//
// HTTP: POST /api/auth/reset-password
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "요청 본문이 올바르지 않습니다"))
		return
	}

	if err := h.service.RedeemPasswordReset(r.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "비밀번호가 성공적으로 변경되었습니다")
}

// HandleOAuthLogin redirects the browser to the provider's authorization
// page.
//
// HTTP: GET /auth/{provider}/login
//
// CSRF PROTECTION VIA STATE:
// A random state value is stored in a short-lived cookie; the callback
// verifies it matches the state echoed back by the provider. That proves the
// flow started on this server.
func (h *AuthHandler) HandleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.providers[chi.URLParam(r, "provider")]
	if !ok {
		writeError(w, apperror.NotFound("지원하지 않는 로그인 방식입니다"))
		return
	}

	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleOAuthCallback completes the provider round trip.
//
// HTTP: GET /auth/{provider}/callback?code=xxx&state=yyy
//
// FLOW:
//  1. Validate the state parameter (CSRF check)
//  2. Exchange the code for the provider's user profile
//  3. Upsert the account and issue the session cookie
//  4. Redirect to the app home page
func (h *AuthHandler) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.providers[chi.URLParam(r, "provider")]
	if !ok {
		writeError(w, apperror.NotFound("지원하지 않는 로그인 방식입니다"))
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("oauth callback: missing state cookie", slog.String("provider", provider.Name()))
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("oauth callback: state mismatch", slog.String("provider", provider.Name()))
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("oauth callback: user denied authorization",
			slog.String("provider", provider.Name()),
			slog.String("error", errParam),
		)
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	profile, err := provider.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback: exchange failed",
			slog.String("provider", provider.Name()),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.service.LoginOrRegisterOAuth(r.Context(), profile)
	if err != nil {
		h.logger.Error("oauth callback: login failed",
			slog.String("provider", provider.Name()),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, result.Token, false)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
