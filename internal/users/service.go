package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/rewearhq/rewear-backend/pkg/errors"
)

// Service exposes profile reads and edits for the authenticated user.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
}

// UpdateProfileRequest is the payload accepted by the profile endpoint.
type UpdateProfileRequest struct {
	DisplayName     *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=120"`
	DeliveryAddress *string `json:"delivery_address,omitempty" validate:"omitempty,max=500"`
}

type service struct {
	repo *Repository
}

// NewService constructs a profile service backed by the users repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	dto := UpdateProfileDTO{DeliveryAddress: req.DeliveryAddress}
	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name must not be blank")
		}
		dto.DisplayName = &trimmed
	}
	if dto.DisplayName == nil && dto.DeliveryAddress == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no profile fields to update")
	}

	if err := s.repo.UpdateProfile(ctx, userID, dto); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return s.Me(ctx, userID)
}
