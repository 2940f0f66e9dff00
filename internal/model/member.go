package model

import (
	"time"
)

// MemberStatus is the administrative flag set by gym staff. It is
// independent of membership-date status, which is derived from dates.
type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberInactive  MemberStatus = "INACTIVE"
	MemberSuspended MemberStatus = "SUSPENDED"
)

// Valid reports whether s is one of the known member statuses.
func (s MemberStatus) Valid() bool {
	switch s {
	case MemberActive, MemberInactive, MemberSuspended:
		return true
	}
	return false
}

// Member represents a gym member.
type Member struct {
	ID        string       `json:"id" gorm:"type:varchar(36);primaryKey"`
	GymID     string       `json:"gym_id" gorm:"type:varchar(36);index;not null"`
	FirstName string       `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName  string       `json:"last_name" gorm:"type:varchar(50)"`
	Email     string       `json:"email" gorm:"type:varchar(100)"`
	Phone     string       `json:"phone" gorm:"type:varchar(20)"`
	Address   string       `json:"address" gorm:"type:varchar(255)"`
	Status    MemberStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:MemberID"`
	Attendances []Attendance `json:"attendances,omitempty" gorm:"foreignKey:MemberID"`
}
