package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rewearhq/rewear-backend/internal/users"
	"github.com/rewearhq/rewear-backend/pkg/config"
	"github.com/rewearhq/rewear-backend/pkg/db"
	pkgerrors "github.com/rewearhq/rewear-backend/pkg/errors"
	"github.com/rewearhq/rewear-backend/pkg/security"
	"gorm.io/gorm"
)

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	DisplayName     string  `json:"display_name" validate:"required"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
	AcceptTOS       bool    `json:"accept_tos"`
}

// RegisterResponse returns the created account.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB              *db.Client
	PasswordConfig  config.PasswordConfig
	StartingBalance int
}

type registerService struct {
	db              *db.Client
	passwordCfg     config.PasswordConfig
	startingBalance int
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.StartingBalance < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "starting balance must not be negative")
	}
	return &registerService{
		db:              params.DB,
		passwordCfg:     params.PasswordConfig,
		startingBalance: params.StartingBalance,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display_name is required")
	}
	if !req.AcceptTOS {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "accept_tos must be true")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:           email,
			PasswordHash:    passwordHash,
			DisplayName:     strings.TrimSpace(req.DisplayName),
			DeliveryAddress: req.DeliveryAddress,
			PointsBalance:   s.startingBalance,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{User: created}, nil
}
