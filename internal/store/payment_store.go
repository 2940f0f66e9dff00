package store

import (
	"github.com/google/uuid"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
)

// PaymentFilter narrows payment listings. Empty fields match everything.
type PaymentFilter struct {
	Status model.PaymentStatus
	Method model.PaymentMethod
}

// ListPayments returns payments visible to the context, newest first.
func (s *Store) ListPayments(rctx *authz.RequestContext, filter PaymentFilter) ([]model.Payment, error) {
	q := s.scoped(rctx)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		q = q.Where("method = ?", filter.Method)
	}

	var payments []model.Payment
	err := q.Preload("Membership").Order("payment_date DESC").Find(&payments).Error
	if err != nil {
		return nil, translate(err, "payments not found")
	}
	return payments, nil
}

// CreatePayment logs a payment against a membership in the context's gym.
// The membership is resolved through the scoped query, so a payment can
// never attach to another gym's membership.
func (s *Store) CreatePayment(rctx *authz.RequestContext, payment *model.Payment) error {
	var membership model.Membership
	if err := s.scoped(rctx).Where("id = ?", payment.MembershipID).First(&membership).Error; err != nil {
		return translate(err, "membership not found")
	}

	if payment.Amount < 0 {
		return apperr.New(apperr.Validation, "amount must not be negative")
	}
	if !payment.Method.Valid() {
		return apperr.New(apperr.Validation, "invalid payment method")
	}
	if payment.Status == "" {
		payment.Status = model.PaymentPaid
	}
	if !payment.Status.Valid() {
		return apperr.New(apperr.Validation, "invalid payment status")
	}

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.GymID = membership.GymID
	return translate(s.db.Create(payment).Error, "membership not found")
}
