package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// TokenCookieName is the cookie carrying the access token for browser clients.
const TokenCookieName = middleware.TokenCookieName

// AuthHandler issues and clears access tokens.
type AuthHandler struct {
	tokenService auth.TokenService
	production   bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. In production the token cookie is
// sent cross-site (Secure, SameSite=None); otherwise it is SameSite=Strict.
func NewAuthHandler(tokenService auth.TokenService, production bool, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		tokenService: tokenService,
		production:   production,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /jwt.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TokenRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	token, expiresAt, err := h.tokenService.GenerateToken(r.Context(), auth.Subject{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	http.SetCookie(w, h.tokenCookie(token, expiresAt))
	log.Debug("access token issued", slog.Time("expires_at", expiresAt))

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Logout handles POST /logout by expiring the token cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.tokenCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

func (h *AuthHandler) tokenCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     TokenCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
