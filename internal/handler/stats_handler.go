package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/prometheus"
)

// StatsHandler serves the dashboard headline numbers.
type StatsHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewStatsHandler creates a StatsHandler using the wall clock.
func NewStatsHandler(st *store.Store) *StatsHandler {
	return &StatsHandler{store: st, now: time.Now}
}

// Dashboard returns member counts, this month's membership revenue and
// today's check-in count for the caller's gym.
func (h *StatsHandler) Dashboard(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	rctx := middleware.ContextFrom(c)

	now := h.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	totalMembers, err := h.store.CountMembers(rctx)
	if err != nil {
		return httpError(c, err)
	}
	activeMembers, err := h.store.CountActiveMembers(rctx)
	if err != nil {
		return httpError(c, err)
	}
	monthlyRevenue, err := h.store.MonthlyRevenue(rctx, startOfMonth)
	if err != nil {
		return httpError(c, err)
	}
	checkInsToday, err := h.store.CountAttendanceForDay(rctx, now.Format(model.CheckInDayFormat))
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_members":   totalMembers,
		"active_members":  activeMembers,
		"monthly_revenue": monthlyRevenue,
		"checkins_today":  checkInsToday,
	})
}
