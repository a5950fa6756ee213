package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rewearhq/rewear-backend/internal/valuation"
	"github.com/rewearhq/rewear-backend/pkg/db/models"
	"github.com/rewearhq/rewear-backend/pkg/enums"
	pkgerrors "github.com/rewearhq/rewear-backend/pkg/errors"
	"github.com/rewearhq/rewear-backend/pkg/pagination"
	"gorm.io/gorm"
)

// CreateItemRequest is the payload accepted when publishing a listing.
type CreateItemRequest struct {
	Title              string   `json:"title" validate:"required,max=180"`
	Description        string   `json:"description" validate:"max=4000"`
	Category           string   `json:"category" validate:"required"`
	Condition          string   `json:"condition" validate:"required"`
	Brand              *string  `json:"brand,omitempty"`
	Images             []string `json:"images" validate:"dive,url"`
	Points             int      `json:"points" validate:"omitempty,gt=0"`
	OriginalPriceCents *int     `json:"original_price_cents,omitempty" validate:"omitempty,gt=0"`
	// UseSuggestedPoints prices the listing from the valuation advisor instead
	// of the submitted points; Points then serves as the fallback value.
	UseSuggestedPoints bool `json:"use_suggested_points,omitempty"`
}

// BrowseRequest carries the public browse query inputs.
type BrowseRequest struct {
	Category string
	Cursor   string
	Limit    int
	// CallerID, when set, excludes the caller's own listings.
	CallerID *uuid.UUID
}

// Service defines the item operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, uploaderID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Browse(ctx context.Context, req BrowseRequest) (*ItemsPageDTO, error)
	ListMine(ctx context.Context, uploaderID uuid.UUID, availableOnly bool) ([]ItemDTO, error)
}

type itemRepository interface {
	Create(ctx context.Context, dto CreateItemDTO) (*models.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListAvailable(ctx context.Context, filter BrowseFilter, page pagination.Params) (ItemsPageDTO, error)
	ListByUploader(ctx context.Context, uploaderID uuid.UUID, availableOnly bool) ([]models.Item, error)
}

type valuationAdvisor interface {
	Suggest(ctx context.Context, title string, category string) (*valuation.Suggestion, error)
}

type service struct {
	repo    itemRepository
	advisor valuationAdvisor
}

// NewService constructs an items service backed by the provided repository. The
// advisor is optional; without one, suggestion-priced listings degrade to the
// caller's fallback points.
func NewService(repo itemRepository, advisor valuationAdvisor) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("items repository is required")
	}
	return &service{repo: repo, advisor: advisor}, nil
}

func (s *service) Create(ctx context.Context, uploaderID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if uploaderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing uploader")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	category, err := enums.ParseItemCategory(req.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	condition, err := enums.ParseItemCondition(req.Condition)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid condition")
	}
	points := req.Points
	originalPrice := req.OriginalPriceCents
	status := enums.ValuationStatusManual
	if req.UseSuggestedPoints {
		suggestion := s.suggest(ctx, title, req.Category)
		if suggestion != nil {
			points = suggestion.SuggestedPoints
			status = enums.ValuationStatusAuto
			if originalPrice == nil {
				price := suggestion.OriginalPriceCents
				originalPrice = &price
			}
		} else {
			// advisor unavailable; fall back to the caller's own value
			status = enums.ValuationStatusUnvalued
		}
	}
	if points <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "points must be positive")
	}

	item, err := s.repo.Create(ctx, CreateItemDTO{
		UploaderID:         uploaderID,
		Title:              title,
		Description:        strings.TrimSpace(req.Description),
		Category:           category,
		Condition:          condition,
		Brand:              req.Brand,
		Images:             req.Images,
		Points:             points,
		OriginalPriceCents: originalPrice,
		ValuationStatus:    status,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create item")
	}
	return FromModel(item), nil
}

// suggest asks the advisor for a price, swallowing failures so a down advisor
// never blocks listing creation.
func (s *service) suggest(ctx context.Context, title, category string) *valuation.Suggestion {
	if s.advisor == nil {
		return nil
	}
	suggestion, err := s.advisor.Suggest(ctx, title, category)
	if err != nil {
		return nil
	}
	return suggestion
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	return FromModel(item), nil
}

func (s *service) Browse(ctx context.Context, req BrowseRequest) (*ItemsPageDTO, error) {
	filter := BrowseFilter{ExcludeUploader: req.CallerID}
	if trimmed := strings.TrimSpace(req.Category); trimmed != "" {
		category, err := enums.ParseItemCategory(trimmed)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		filter.Category = &category
	}

	page, err := s.repo.ListAvailable(ctx, filter, pagination.Params{
		Cursor: req.Cursor,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "browse items")
	}
	return &page, nil
}

func (s *service) ListMine(ctx context.Context, uploaderID uuid.UUID, availableOnly bool) ([]ItemDTO, error) {
	if uploaderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing uploader")
	}
	records, err := s.repo.ListByUploader(ctx, uploaderID, availableOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list items")
	}
	items := make([]ItemDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i]))
	}
	return items, nil
}
