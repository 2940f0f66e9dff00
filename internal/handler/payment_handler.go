package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/pkg/logger"
	"github.com/ketanMehtaa/gymone/prometheus"
)

// PaymentHandler serves payment logging and listing.
type PaymentHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewPaymentHandler creates a PaymentHandler using the wall clock.
func NewPaymentHandler(st *store.Store) *PaymentHandler {
	return &PaymentHandler{store: st, now: time.Now}
}

// List returns payments, optionally filtered by status and method. "ALL"
// matches everything, as the dashboard filter widget sends it.
func (h *PaymentHandler) List(c echo.Context) error {
	filter := store.PaymentFilter{}
	if status := c.QueryParam("status"); status != "" && status != "ALL" {
		filter.Status = model.PaymentStatus(status)
	}
	if method := c.QueryParam("method"); method != "" && method != "ALL" {
		filter.Method = model.PaymentMethod(method)
	}

	payments, err := h.store.ListPayments(middleware.ContextFrom(c), filter)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Create logs a payment against a membership.
func (h *PaymentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		MembershipID string  `json:"membership_id"`
		Amount       float64 `json:"amount"`
		Method       string  `json:"method"`
		Status       string  `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse payment request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}
	if req.MembershipID == "" {
		return httpError(c, apperr.New(apperr.Validation, "membership id is required"))
	}

	payment := &model.Payment{
		MembershipID: req.MembershipID,
		Amount:       req.Amount,
		Method:       model.PaymentMethod(req.Method),
		Status:       model.PaymentStatus(req.Status),
		PaymentDate:  h.now(),
	}

	if err := h.store.CreatePayment(middleware.ContextFrom(c), payment); err != nil {
		return httpError(c, err)
	}
	prometheus.RecordStoreOperation("payment_create")

	log.Info("Payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("membership_id", payment.MembershipID))
	return c.JSON(http.StatusCreated, payment)
}
