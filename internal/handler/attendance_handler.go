package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/service"
	"github.com/ketanMehtaa/gymone/pkg/logger"
	"github.com/ketanMehtaa/gymone/prometheus"
)

// AttendanceHandler serves check-in, check-out and the day's visit list.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// CheckIn records a member's visit for today. A duplicate check-in is a
// normal outcome and comes back as a 409 with a message the UI can show.
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse check-in request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}

	attendance, err := h.attendance.CheckIn(middleware.ContextFrom(c), req.MemberID)
	if err != nil {
		recordCheckInRejection(err)
		return httpError(c, err)
	}
	prometheus.CheckInCounter.Inc()

	log.Info("Check-in recorded",
		zap.String("member_id", attendance.MemberID),
		zap.String("attendance_id", attendance.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Check-in recorded successfully",
		"data":    attendance,
	})
}

// CheckOut closes today's open visit for a member.
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse check-out request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}

	attendance, err := h.attendance.CheckOut(middleware.ContextFrom(c), req.MemberID)
	if err != nil {
		return httpError(c, err)
	}

	log.Info("Check-out recorded", zap.String("member_id", attendance.MemberID))
	return c.JSON(http.StatusOK, echo.Map{"data": attendance})
}

// Today lists today's check-ins for the caller's gym, newest first.
func (h *AttendanceHandler) Today(c echo.Context) error {
	attendances, err := h.attendance.Today(middleware.ContextFrom(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, attendances)
}

func recordCheckInRejection(err error) {
	switch apperr.KindOf(err) {
	case apperr.Conflict:
		prometheus.RecordCheckInRejected("duplicate")
	case apperr.NotFound:
		prometheus.RecordCheckInRejected("not_found")
	case apperr.Validation:
		prometheus.RecordCheckInRejected("ineligible")
	}
}
