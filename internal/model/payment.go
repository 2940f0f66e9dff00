package model

import (
	"time"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentUPI  PaymentMethod = "UPI"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentPending PaymentStatus = "PENDING"
	PaymentFailed  PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentFailed:
		return true
	}
	return false
}

// Payment logs money received against a membership. Payments follow the
// same gym scoping rule as every other tenant-owned row.
type Payment struct {
	ID           string        `json:"id" gorm:"type:varchar(36);primaryKey"`
	GymID        string        `json:"gym_id" gorm:"type:varchar(36);index;not null"`
	MembershipID string        `json:"membership_id" gorm:"type:varchar(36);index;not null"`
	Amount       float64       `json:"amount"`
	Method       PaymentMethod `json:"method" gorm:"type:varchar(20)"`
	Status       PaymentStatus `json:"status" gorm:"type:varchar(20);default:'PAID'"`
	PaymentDate  time.Time     `json:"payment_date"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Membership *Membership `json:"membership,omitempty" gorm:"foreignKey:MembershipID"`
}
