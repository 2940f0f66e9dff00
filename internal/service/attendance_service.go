package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/internal/store"
)

// AttendanceService enforces check-in eligibility and the once-per-day
// rule, then records visits. The clock is injected so tests control "now".
type AttendanceService struct {
	store *store.Store
	now   func() time.Time
}

// NewAttendanceService creates an AttendanceService using the wall clock.
func NewAttendanceService(st *store.Store) *AttendanceService {
	return &AttendanceService{store: st, now: time.Now}
}

// NewAttendanceServiceWithClock creates an AttendanceService with an
// explicit clock.
func NewAttendanceServiceWithClock(st *store.Store, now func() time.Time) *AttendanceService {
	return &AttendanceService{store: st, now: now}
}

// CheckIn records a member's visit for today. Preconditions, first failure
// wins: member in the caller's gym, member administratively active, a
// currently valid membership, and no check-in yet today. The last one is
// double-enforced by the storage unique index, so concurrent calls yield
// exactly one success.
func (s *AttendanceService) CheckIn(rctx *authz.RequestContext, memberID string) (*model.Attendance, error) {
	if memberID == "" {
		return nil, apperr.New(apperr.Validation, "member id is required")
	}

	member, err := s.store.GetMember(rctx, memberID)
	if err != nil {
		return nil, err
	}

	if member.Status != model.MemberActive {
		return nil, apperr.New(apperr.Validation, "member is not active")
	}

	now := s.now()
	current := model.CurrentMembership(member.Memberships)
	if model.StatusOf(current, now) != model.MembershipActive {
		return nil, apperr.New(apperr.Validation, "member does not have an active membership")
	}

	attendance := &model.Attendance{
		ID:         uuid.New().String(),
		GymID:      member.GymID,
		MemberID:   member.ID,
		CheckIn:    now,
		CheckInDay: now.Format(model.CheckInDayFormat),
	}
	if err := s.store.CreateAttendance(attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// CheckOut closes today's open visit for the member. A visit that is
// already closed reports a conflict; never having checked in reports
// not-found, so the desk sees which of the two happened.
func (s *AttendanceService) CheckOut(rctx *authz.RequestContext, memberID string) (*model.Attendance, error) {
	if memberID == "" {
		return nil, apperr.New(apperr.Validation, "member id is required")
	}

	now := s.now()
	day := now.Format(model.CheckInDayFormat)
	attendance, err := s.store.OpenAttendanceForDay(rctx, memberID, day)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			if _, dayErr := s.store.AttendanceForDay(rctx, memberID, day); dayErr == nil {
				return nil, apperr.New(apperr.Conflict, "member has already checked out today")
			}
		}
		return nil, err
	}

	attendance.CheckOut = &now
	if err := s.store.SaveAttendance(attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// Today lists today's check-ins in the caller's gym.
func (s *AttendanceService) Today(rctx *authz.RequestContext) ([]model.Attendance, error) {
	return s.store.ListAttendanceForDay(rctx, s.now().Format(model.CheckInDayFormat))
}
