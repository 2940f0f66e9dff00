package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
)

// CreateMembership inserts a membership for a member in the context's gym.
// The member is re-resolved through the scoped query first: a membership
// can never point at a member of another gym, and a cross-gym attempt
// reads as "member not found" rather than revealing anything.
func (s *Store) CreateMembership(rctx *authz.RequestContext, membership *model.Membership) error {
	var member model.Member
	if err := s.scoped(rctx).Where("id = ?", membership.MemberID).First(&member).Error; err != nil {
		return translate(err, "member not found")
	}

	if !membership.EndDate.After(membership.StartDate) {
		return apperr.New(apperr.Validation, "end date must be after start date")
	}

	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}
	membership.GymID = member.GymID
	return translate(s.db.Create(membership).Error, "member not found")
}

// ListMemberships returns a member's membership history, newest end date
// first.
func (s *Store) ListMemberships(rctx *authz.RequestContext, memberID string) ([]model.Membership, error) {
	var member model.Member
	if err := s.scoped(rctx).Where("id = ?", memberID).First(&member).Error; err != nil {
		return nil, translate(err, "member not found")
	}

	var memberships []model.Membership
	err := s.db.Where("member_id = ?", member.ID).
		Order("end_date DESC").
		Find(&memberships).Error
	if err != nil {
		return nil, translate(err, "member not found")
	}
	return memberships, nil
}

// MonthlyRevenue sums membership amounts created since the given instant.
func (s *Store) MonthlyRevenue(rctx *authz.RequestContext, since time.Time) (float64, error) {
	var total float64
	err := s.scoped(rctx).Model(&model.Membership{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, translate(err, "memberships not found")
	}
	return total, nil
}
