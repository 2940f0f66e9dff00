package model

import (
	"time"
)

// MembershipStatus is derived from dates on every read and never persisted,
// so it cannot drift from wall-clock time.
type MembershipStatus string

const (
	MembershipNone    MembershipStatus = "NONE"
	MembershipExpired MembershipStatus = "EXPIRED"
	MembershipActive  MembershipStatus = "ACTIVE"
)

// Membership represents one paid period for a member. Renewals create new
// rows; there is no "current" pointer.
type Membership struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	GymID         string    `json:"gym_id" gorm:"type:varchar(36);index;not null"`
	MemberID      string    `json:"member_id" gorm:"type:varchar(36);index;not null"`
	StartDate     time.Time `json:"start_date" gorm:"not null"`
	EndDate       time.Time `json:"end_date" gorm:"not null"`
	Amount        float64   `json:"amount"`
	CreatedByID   string    `json:"created_by_id" gorm:"type:varchar(36)"`
	CreatedByRole string    `json:"created_by_role" gorm:"type:varchar(20)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CurrentMembership selects the membership treated as authoritative for
// status purposes: the one with the latest end date, ties broken by latest
// start date, then most recent creation. The winner is selected regardless
// of whether it is temporally active.
func CurrentMembership(memberships []Membership) *Membership {
	var current *Membership
	for i := range memberships {
		m := &memberships[i]
		if current == nil || laterMembership(m, current) {
			current = m
		}
	}
	return current
}

func laterMembership(a, b *Membership) bool {
	if !a.EndDate.Equal(b.EndDate) {
		return a.EndDate.After(b.EndDate)
	}
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.After(b.StartDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// StatusOf derives the run-time status of a membership at the given
// instant. A membership ending exactly now is EXPIRED; ACTIVE requires the
// end date to be strictly in the future.
func StatusOf(m *Membership, now time.Time) MembershipStatus {
	if m == nil {
		return MembershipNone
	}
	if m.EndDate.After(now) {
		return MembershipActive
	}
	return MembershipExpired
}
