package model

import (
	"time"
)

// CheckInDayFormat is the layout of the CheckInDay column.
const CheckInDayFormat = "2006-01-02"

// Attendance represents one visit. CheckInDay stores the calendar date of
// the check-in; the composite unique index on (member_id, check_in_day)
// makes the once-per-day rule hold at the storage boundary, so two
// concurrent check-ins cannot both commit.
type Attendance struct {
	ID         string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	GymID      string     `json:"gym_id" gorm:"type:varchar(36);index;not null"`
	MemberID   string     `json:"member_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_attendance_member_day"`
	CheckIn    time.Time  `json:"check_in" gorm:"not null"`
	CheckInDay string     `json:"-" gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_member_day"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Member *Member `json:"member,omitempty" gorm:"foreignKey:MemberID"`
}
