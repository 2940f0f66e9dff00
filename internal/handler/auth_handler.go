package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/service"
	"github.com/ketanMehtaa/gymone/pkg/logger"
	"github.com/ketanMehtaa/gymone/prometheus"
)

// AuthHandler serves login, logout and the current-principal endpoint.
type AuthHandler struct {
	auth          *service.AuthService
	tokenLifetime time.Duration
}

// NewAuthHandler creates an AuthHandler. The token lifetime sizes the
// cookie max-age to match the token's expiry.
func NewAuthHandler(auth *service.AuthService, tokenLifetime time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokenLifetime: tokenLifetime}
}

// Login authenticates a principal of the claimed role, sets the token
// cookie and returns the token in the body for header-based clients.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}

	role, ok := authz.ParseRole(req.Role)
	if !ok {
		return httpError(c, apperr.New(apperr.Validation, "invalid role"))
	}

	user, token, err := h.auth.Login(req.Email, req.Password, role)
	if err != nil {
		prometheus.RecordAuthError("login_failure")
		return httpError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenLifetime.Seconds()),
	})

	log.Info("Login succeeded",
		zap.String("principal_id", user.ID),
		zap.String("role", string(user.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}

// Logout clears the token cookie. The token itself simply ages out.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me returns the authenticated principal's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	rctx := middleware.ContextFrom(c)
	user, err := h.auth.Me(rctx)
	if err != nil {
		// The principal vanished after the token was issued; report it
		// as a credential problem, not a missing resource.
		if apperr.IsKind(err, apperr.NotFound) {
			return httpError(c, apperr.New(apperr.Unauthenticated, "authentication required"))
		}
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
