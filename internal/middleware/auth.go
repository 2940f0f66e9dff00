package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/pkg/jwtutil"
	"github.com/ketanMehtaa/gymone/pkg/logger"
	"github.com/ketanMehtaa/gymone/prometheus"
)

const (
	claimsKey         = "claims"
	requestContextKey = "request_context"

	// TokenCookieName is the cookie the login handler sets; the dashboard
	// sends the token that way, API clients use the Bearer header.
	TokenCookieName = "token"
)

// Auth validates the request's token (Bearer header or cookie) and stores
// the verified claims in the echo context. An invalid, expired or missing
// token always produces the same 401; the reason is only logged.
func Auth(tokens *jwtutil.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tokenString := extractToken(c)
			if tokenString == "" {
				log.Warn("Missing authorization token")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				if errors.Is(err, jwtutil.ErrExpired) {
					log.Warn("Expired JWT token")
					prometheus.RecordAuthError("expired_token")
				} else {
					log.Warn("Invalid JWT token", zap.Error(err))
					prometheus.RecordAuthError("invalid_token")
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// Require authorizes the request against the operation's rule and binds
// the resulting request context. Super admins may target a gym explicitly
// with the gym_id query parameter on tenant-scoped operations.
func Require(rule authz.Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			claims, _ := c.Get(claimsKey).(*jwtutil.UserClaims)
			rctx, err := authz.Authorize(claims, rule, c.QueryParam("gym_id"))
			if err != nil {
				log.Warn("Authorization rejected", zap.Error(err))
				if apperr.IsKind(err, apperr.Forbidden) {
					prometheus.RecordAuthError("forbidden")
					return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
				}
				prometheus.RecordAuthError("unauthenticated")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			c.Set(requestContextKey, rctx)
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims stored by Auth, if any.
func ClaimsFrom(c echo.Context) *jwtutil.UserClaims {
	claims, _ := c.Get(claimsKey).(*jwtutil.UserClaims)
	return claims
}

// ContextFrom returns the request context bound by Require.
func ContextFrom(c echo.Context) *authz.RequestContext {
	rctx, _ := c.Get(requestContextKey).(*authz.RequestContext)
	return rctx
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
