package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/rewearhq/rewear-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"display_name"`
	DeliveryAddress *string    `json:"delivery_address,omitempty"`
	PointsBalance   int        `json:"points_balance"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email           string
	PasswordHash    string
	DisplayName     string
	DeliveryAddress *string
	PointsBalance   int
	IsActive        *bool
}

// UpdateProfileDTO carries the mutable profile fields. Nil fields are left untouched.
type UpdateProfileDTO struct {
	DisplayName     *string
	DeliveryAddress *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		DeliveryAddress: u.DeliveryAddress,
		PointsBalance:   u.PointsBalance,
		IsActive:        u.IsActive,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return &models.User{
		Email:           c.Email,
		PasswordHash:    c.PasswordHash,
		DisplayName:     c.DisplayName,
		DeliveryAddress: c.DeliveryAddress,
		PointsBalance:   c.PointsBalance,
		IsActive:        isActive,
	}
}
