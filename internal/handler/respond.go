package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/pkg/logger"
)

// httpError maps an error's kind to its HTTP status and a stable-shaped
// body. Internal errors are logged with full context and reported without
// detail; everything else carries its caller-safe message.
func httpError(c echo.Context, err error) error {
	log := logger.FromContext(c)
	kind := apperr.KindOf(err)

	if kind == apperr.Internal {
		log.Error("Request failed", zap.Error(err))
	} else {
		log.Warn("Request rejected", zap.String("kind", kind.String()), zap.Error(err))
	}

	return c.JSON(statusOf(kind), echo.Map{"error": apperr.MessageOf(err)})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.Transient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
