package store

import (
	"gorm.io/gorm"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
)

// CreateGymWithAdmin atomically provisions a gym together with its owning
// admin. Either both rows exist afterwards or neither does; duplicate
// emails abort the transaction before anything is written.
func (s *Store) CreateGymWithAdmin(gym *model.Gym, admin *model.Admin) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Gym{}).Where("email = ?", gym.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.New(apperr.Validation, "a gym with this email already exists")
		}

		if err := tx.Model(&model.Admin{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.New(apperr.Validation, "an admin with this email already exists")
		}

		gym.AdminID = admin.ID
		admin.GymID = &gym.ID
		if err := tx.Create(gym).Error; err != nil {
			return err
		}
		return tx.Create(admin).Error
	})

	if err != nil {
		if apperr.IsKind(err, apperr.Validation) {
			return err
		}
		return translate(err, "gym not found")
	}
	return nil
}

// ListGyms returns the gyms visible to the context: the single owning gym
// for admins and staff, every gym for an unscoped super admin. The gym
// table's own id is the tenant id, so scoping filters on id here.
func (s *Store) ListGyms(rctx *authz.RequestContext) ([]model.Gym, error) {
	q := s.db
	if rctx != nil && rctx.GymID != nil {
		q = q.Where("id = ?", *rctx.GymID)
	}

	var gyms []model.Gym
	err := q.Preload("Admin").Order("created_at DESC").Find(&gyms).Error
	if err != nil {
		return nil, translate(err, "gyms not found")
	}
	return gyms, nil
}
