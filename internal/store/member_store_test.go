package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/model"
)

func TestCreateMemberRequiresGymScope(t *testing.T) {
	s := setupStore(t)

	err := s.CreateMember(superCtx(), &model.Member{FirstName: "Nina"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestCreateMemberDefaultsStatusActive(t *testing.T) {
	s := setupStore(t)
	gym := seedGym(t, s, "ironworks")

	member := seedMember(t, s, gym.ID, "nina")
	assert.NotEmpty(t, member.ID)
	assert.Equal(t, gym.ID, member.GymID)
	assert.Equal(t, model.MemberActive, member.Status)
}

func TestGetMemberOtherGymIsNotFound(t *testing.T) {
	s := setupStore(t)
	gymA := seedGym(t, s, "alpha")
	gymB := seedGym(t, s, "bravo")
	member := seedMember(t, s, gymA.ID, "nina")

	_, err := s.GetMember(ctxFor(gymB.ID), member.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	got, err := s.GetMember(ctxFor(gymA.ID), member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)
}

func TestListMembersScopedToGym(t *testing.T) {
	s := setupStore(t)
	gymA := seedGym(t, s, "alpha")
	gymB := seedGym(t, s, "bravo")
	seedMember(t, s, gymA.ID, "nina")
	seedMember(t, s, gymA.ID, "omar")
	seedMember(t, s, gymB.ID, "pia")

	members, err := s.ListMembers(ctxFor(gymA.ID))
	require.NoError(t, err)
	assert.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, gymA.ID, m.GymID)
	}
}

func TestListMembersUnscopedSuperAdminSeesAll(t *testing.T) {
	s := setupStore(t)
	gymA := seedGym(t, s, "alpha")
	gymB := seedGym(t, s, "bravo")
	seedMember(t, s, gymA.ID, "nina")
	seedMember(t, s, gymB.ID, "pia")

	members, err := s.ListMembers(superCtx())
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestSearchMembersCaseInsensitive(t *testing.T) {
	s := setupStore(t)
	gym := seedGym(t, s, "alpha")
	seedMember(t, s, gym.ID, "Nina")
	seedMember(t, s, gym.ID, "Omar")

	members, err := s.SearchMembers(ctxFor(gym.ID), "NIN")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Nina", members[0].FirstName)
}

func TestUpdateMemberAppliesOnlyGivenFields(t *testing.T) {
	s := setupStore(t)
	gym := seedGym(t, s, "alpha")
	member := seedMember(t, s, gym.ID, "nina")

	phone := "555-0101"
	status := model.MemberSuspended
	updated, err := s.UpdateMember(ctxFor(gym.ID), member.ID, MemberUpdate{
		Phone:  &phone,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "nina", updated.FirstName)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, model.MemberSuspended, updated.Status)
}

func TestUpdateMemberRejectsInvalidStatus(t *testing.T) {
	s := setupStore(t)
	gym := seedGym(t, s, "alpha")
	member := seedMember(t, s, gym.ID, "nina")

	bad := model.MemberStatus("FROZEN")
	_, err := s.UpdateMember(ctxFor(gym.ID), member.ID, MemberUpdate{Status: &bad})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestUpdateMemberOtherGymIsNotFound(t *testing.T) {
	s := setupStore(t)
	gymA := seedGym(t, s, "alpha")
	gymB := seedGym(t, s, "bravo")
	member := seedMember(t, s, gymA.ID, "nina")

	phone := "555-0101"
	_, err := s.UpdateMember(ctxFor(gymB.ID), member.ID, MemberUpdate{Phone: &phone})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteMemberPurgesHistory(t *testing.T) {
	s := setupStore(t)
	gym := seedGym(t, s, "alpha")
	member := seedMember(t, s, gym.ID, "nina")
	membership := seedMembership(t, s, gym.ID, member.ID, day(0), day(30))
	require.NoError(t, s.CreatePayment(ctxFor(gym.ID), &model.Payment{
		MembershipID: membership.ID,
		Amount:       50,
		Method:       model.PaymentCash,
	}))
	require.NoError(t, s.CreateAttendance(&model.Attendance{
		ID:         "att-1",
		GymID:      gym.ID,
		MemberID:   member.ID,
		CheckIn:    day(1),
		CheckInDay: day(1).Format(model.CheckInDayFormat),
	}))

	require.NoError(t, s.DeleteMember(ctxFor(gym.ID), member.ID))

	assert.EqualValues(t, 0, countRows(t, s.db, &model.Member{}))
	assert.EqualValues(t, 0, countRows(t, s.db, &model.Membership{}))
	assert.EqualValues(t, 0, countRows(t, s.db, &model.Payment{}))
	assert.EqualValues(t, 0, countRows(t, s.db, &model.Attendance{}))
}

func TestDeleteMemberOtherGymIsNotFoundAndKeepsRows(t *testing.T) {
	s := setupStore(t)
	gymA := seedGym(t, s, "alpha")
	gymB := seedGym(t, s, "bravo")
	member := seedMember(t, s, gymA.ID, "nina")

	err := s.DeleteMember(ctxFor(gymB.ID), member.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.EqualValues(t, 1, countRows(t, s.db, &model.Member{}))
}

func TestCountActiveMembers(t *testing.T) {
	s := setupStore(t)
	gym := seedGym(t, s, "alpha")
	seedMember(t, s, gym.ID, "nina")
	inactive := seedMember(t, s, gym.ID, "omar")
	status := model.MemberInactive
	_, err := s.UpdateMember(ctxFor(gym.ID), inactive.ID, MemberUpdate{Status: &status})
	require.NoError(t, err)

	total, err := s.CountMembers(ctxFor(gym.ID))
	require.NoError(t, err)
	active, err := s.CountActiveMembers(ctxFor(gym.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.EqualValues(t, 1, active)
}
