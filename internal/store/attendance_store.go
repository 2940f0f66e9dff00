package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
)

// CreateAttendance inserts a check-in row. The unique index on
// (member_id, check_in_day) is the concurrency guard: when two check-ins
// race, the second insert fails here and is reported as the same conflict
// an application-level duplicate would produce.
func (s *Store) CreateAttendance(attendance *model.Attendance) error {
	err := s.db.Create(attendance).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.New(apperr.Conflict, "member has already checked in today")
	}
	return translate(err, "member not found")
}

// OpenAttendanceForDay finds the day's check-in without a check-out for
// the member, inside the context's gym.
func (s *Store) OpenAttendanceForDay(rctx *authz.RequestContext, memberID, day string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := s.scoped(rctx).
		Where("member_id = ? AND check_in_day = ? AND check_out IS NULL", memberID, day).
		First(&attendance).Error
	if err != nil {
		return nil, translate(err, "no open check-in for today")
	}
	return &attendance, nil
}

// AttendanceForDay returns the member's check-in for the given day if one
// exists, open or closed.
func (s *Store) AttendanceForDay(rctx *authz.RequestContext, memberID, day string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := s.scoped(rctx).
		Where("member_id = ? AND check_in_day = ?", memberID, day).
		First(&attendance).Error
	if err != nil {
		return nil, translate(err, "no check-in for today")
	}
	return &attendance, nil
}

// SaveAttendance persists an updated attendance row (check-out).
func (s *Store) SaveAttendance(attendance *model.Attendance) error {
	return translate(s.db.Save(attendance).Error, "attendance not found")
}

// ListAttendanceForDay returns the day's check-ins in the context's gym,
// most recent first, with member names for the dashboard list.
func (s *Store) ListAttendanceForDay(rctx *authz.RequestContext, day string) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := s.scoped(rctx).
		Where("check_in_day = ?", day).
		Preload("Member").
		Order("check_in DESC").
		Find(&attendances).Error
	if err != nil {
		return nil, translate(err, "attendance not found")
	}
	return attendances, nil
}

// CountAttendanceForDay counts the day's check-ins in the context's gym.
func (s *Store) CountAttendanceForDay(rctx *authz.RequestContext, day string) (int64, error) {
	var count int64
	err := s.scoped(rctx).Model(&model.Attendance{}).
		Where("check_in_day = ?", day).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "attendance not found")
	}
	return count, nil
}
