package store

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
)

// MemberUpdate carries the mutable member fields; nil means unchanged.
type MemberUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Status    *model.MemberStatus
}

// ListMembers returns the members visible to the context, newest first.
func (s *Store) ListMembers(rctx *authz.RequestContext) ([]model.Member, error) {
	var members []model.Member
	err := s.scoped(rctx).Order("created_at DESC").Find(&members).Error
	if err != nil {
		return nil, translate(err, "members not found")
	}
	return members, nil
}

// SearchMembers finds members matching the query on name or email,
// case-insensitively, inside the context's gym.
func (s *Store) SearchMembers(rctx *authz.RequestContext, query string) ([]model.Member, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var members []model.Member
	err := s.scoped(rctx).
		Where("lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ?",
			pattern, pattern, pattern).
		Find(&members).Error
	if err != nil {
		return nil, translate(err, "members not found")
	}
	return members, nil
}

// GetMember loads one member with full membership and attendance history.
// Memberships come back ordered by end date so the first entry is the
// current one under the selection rule.
func (s *Store) GetMember(rctx *authz.RequestContext, id string) (*model.Member, error) {
	var member model.Member
	err := s.scoped(rctx).
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("end_date DESC")
		}).
		Preload("Attendances", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in DESC")
		}).
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, translate(err, "member not found")
	}
	return &member, nil
}

// ListActiveMembersWithMemberships returns administratively active members
// with their membership history, for derived-status listings.
func (s *Store) ListActiveMembersWithMemberships(rctx *authz.RequestContext) ([]model.Member, error) {
	var members []model.Member
	err := s.scoped(rctx).
		Where("status = ?", model.MemberActive).
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("end_date DESC")
		}).
		Find(&members).Error
	if err != nil {
		return nil, translate(err, "members not found")
	}
	return members, nil
}

// CreateMember inserts a member into the context's gym.
func (s *Store) CreateMember(rctx *authz.RequestContext, member *model.Member) error {
	gymID, err := requireGym(rctx)
	if err != nil {
		return err
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	member.GymID = gymID
	if member.Status == "" {
		member.Status = model.MemberActive
	}
	if !member.Status.Valid() {
		return apperr.New(apperr.Validation, "invalid member status")
	}
	return translate(s.db.Create(member).Error, "member not found")
}

// UpdateMember applies the given changes to a member in the context's gym.
func (s *Store) UpdateMember(rctx *authz.RequestContext, id string, update MemberUpdate) (*model.Member, error) {
	var member model.Member
	if err := s.scoped(rctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, translate(err, "member not found")
	}

	if update.FirstName != nil {
		member.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		member.LastName = *update.LastName
	}
	if update.Email != nil {
		member.Email = *update.Email
	}
	if update.Phone != nil {
		member.Phone = *update.Phone
	}
	if update.Address != nil {
		member.Address = *update.Address
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, apperr.New(apperr.Validation, "invalid member status")
		}
		member.Status = *update.Status
	}

	if err := s.db.Save(&member).Error; err != nil {
		return nil, translate(err, "member not found")
	}
	return &member, nil
}

// DeleteMember removes a member and, deliberately and in one transaction,
// the member's attendance records, payments and memberships. History is
// purged explicitly rather than left to foreign-key cascades.
func (s *Store) DeleteMember(rctx *authz.RequestContext, id string) error {
	var member model.Member
	if err := s.scoped(rctx).Where("id = ?", id).First(&member).Error; err != nil {
		return translate(err, "member not found")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var membershipIDs []string
		if err := tx.Model(&model.Membership{}).
			Where("member_id = ?", member.ID).
			Pluck("id", &membershipIDs).Error; err != nil {
			return err
		}
		if len(membershipIDs) > 0 {
			if err := tx.Where("membership_id IN ?", membershipIDs).
				Delete(&model.Payment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("member_id = ?", member.ID).
			Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", member.ID).
			Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&member).Error
	})
	return translate(err, "member not found")
}

// CountMembers counts members visible to the context.
func (s *Store) CountMembers(rctx *authz.RequestContext) (int64, error) {
	var count int64
	err := s.scoped(rctx).Model(&model.Member{}).Count(&count).Error
	if err != nil {
		return 0, translate(err, "members not found")
	}
	return count, nil
}

// CountActiveMembers counts administratively active members.
func (s *Store) CountActiveMembers(rctx *authz.RequestContext) (int64, error) {
	var count int64
	err := s.scoped(rctx).Model(&model.Member{}).
		Where("status = ?", model.MemberActive).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "members not found")
	}
	return count, nil
}
