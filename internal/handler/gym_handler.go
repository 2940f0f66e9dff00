package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/service"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/pkg/logger"
	"github.com/ketanMehtaa/gymone/prometheus"
)

// GymHandler serves gym provisioning and listing.
type GymHandler struct {
	auth  *service.AuthService
	store *store.Store
}

// NewGymHandler creates a GymHandler.
func NewGymHandler(auth *service.AuthService, st *store.Store) *GymHandler {
	return &GymHandler{auth: auth, store: st}
}

// Provision creates a gym and its owning admin in one transaction.
func (h *GymHandler) Provision(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		service.GymInput
		service.AdminInput
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse gym provisioning request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}

	gym, err := h.auth.ProvisionGym(middleware.ContextFrom(c), req.GymInput, req.AdminInput)
	if err != nil {
		return httpError(c, err)
	}
	prometheus.GymProvisionCounter.Inc()

	log.Info("Gym provisioned",
		zap.String("gym_id", gym.ID),
		zap.String("admin_id", gym.AdminID))
	return c.JSON(http.StatusCreated, gym)
}

// List returns the gyms visible to the caller: all of them for an
// unscoped super admin, the caller's own gym otherwise.
func (h *GymHandler) List(c echo.Context) error {
	gyms, err := h.store.ListGyms(middleware.ContextFrom(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, gyms)
}
