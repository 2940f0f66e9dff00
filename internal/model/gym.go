package model

import (
	"time"
)

// Gym represents a tenant. Every member, membership, attendance record and
// payment carries the owning gym's id; that column is the sole isolation
// mechanism, so it is never optional on tenant-owned rows.
type Gym struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Address   string    `json:"address" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	AdminID   string    `json:"admin_id" gorm:"type:varchar(36);index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Admin *Admin `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
}
