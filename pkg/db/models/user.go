package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical account entity. PointsBalance is guarded by a
// CHECK constraint and is only ever debited inside an exchange transaction.
type User struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email           string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash    string     `gorm:"column:password_hash;not null"`
	DisplayName     string     `gorm:"column:display_name;not null"`
	DeliveryAddress *string    `gorm:"column:delivery_address"`
	PointsBalance   int        `gorm:"column:points_balance;not null;default:0;check:points_balance >= 0"`
	IsActive        bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
