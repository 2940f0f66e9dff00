package store

import (
	"github.com/google/uuid"

	"github.com/ketanMehtaa/gymone/internal/model"
)

// FindSuperAdminByEmail looks up a super admin credential record.
func (s *Store) FindSuperAdminByEmail(email string) (*model.SuperAdmin, error) {
	var sa model.SuperAdmin
	if err := s.db.Where("email = ?", email).First(&sa).Error; err != nil {
		return nil, translate(err, "super admin not found")
	}
	return &sa, nil
}

// FindAdminByEmail looks up an admin credential record.
func (s *Store) FindAdminByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, translate(err, "admin not found")
	}
	return &admin, nil
}

// FindStaffByEmail looks up a staff credential record.
func (s *Store) FindStaffByEmail(email string) (*model.Staff, error) {
	var staff model.Staff
	if err := s.db.Where("email = ?", email).First(&staff).Error; err != nil {
		return nil, translate(err, "staff not found")
	}
	return &staff, nil
}

// GetSuperAdmin loads a super admin by id.
func (s *Store) GetSuperAdmin(id string) (*model.SuperAdmin, error) {
	var sa model.SuperAdmin
	if err := s.db.Where("id = ?", id).First(&sa).Error; err != nil {
		return nil, translate(err, "super admin not found")
	}
	return &sa, nil
}

// GetAdmin loads an admin by id.
func (s *Store) GetAdmin(id string) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, translate(err, "admin not found")
	}
	return &admin, nil
}

// GetStaff loads a staff record by id.
func (s *Store) GetStaff(id string) (*model.Staff, error) {
	var staff model.Staff
	if err := s.db.Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, translate(err, "staff not found")
	}
	return &staff, nil
}

// CreateSuperAdmin inserts a super admin credential record.
func (s *Store) CreateSuperAdmin(sa *model.SuperAdmin) error {
	if sa.ID == "" {
		sa.ID = uuid.New().String()
	}
	return translate(s.db.Create(sa).Error, "super admin not found")
}

// CountSuperAdmins counts existing super admin records; seeding is skipped
// when one already exists.
func (s *Store) CountSuperAdmins() (int64, error) {
	var count int64
	if err := s.db.Model(&model.SuperAdmin{}).Count(&count).Error; err != nil {
		return 0, translate(err, "super admins not found")
	}
	return count, nil
}
