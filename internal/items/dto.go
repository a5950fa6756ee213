package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/rewearhq/rewear-backend/pkg/db/models"
	"github.com/rewearhq/rewear-backend/pkg/enums"
)

// ItemDTO is the transport shape for a listing.
type ItemDTO struct {
	ID                 uuid.UUID             `json:"id"`
	UploaderID         uuid.UUID             `json:"uploader_id"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Category           enums.ItemCategory    `json:"category"`
	Condition          enums.ItemCondition   `json:"condition"`
	Brand              *string               `json:"brand,omitempty"`
	Images             []string              `json:"images"`
	Points             int                   `json:"points"`
	OriginalPriceCents *int                  `json:"original_price_cents,omitempty"`
	ValuationStatus    enums.ValuationStatus `json:"valuation_status"`
	Status             enums.ItemStatus      `json:"status"`
	Uploader           *UploaderSummary      `json:"uploader,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// UploaderSummary exposes the minimal uploader details shown on item pages.
type UploaderSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// CreateItemDTO holds the data the repo needs to persist a listing.
type CreateItemDTO struct {
	UploaderID         uuid.UUID
	Title              string
	Description        string
	Category           enums.ItemCategory
	Condition          enums.ItemCondition
	Brand              *string
	Images             []string
	Points             int
	OriginalPriceCents *int
	ValuationStatus    enums.ValuationStatus
}

// ItemsPageDTO wraps one page of listings plus the cursor for the next page.
type ItemsPageDTO struct {
	Items      []ItemDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
	Total      int       `json:"total"`
}

// BrowseFilter narrows the public browse query.
type BrowseFilter struct {
	Category *enums.ItemCategory
	// ExcludeUploader hides the caller's own listings from browse results.
	ExcludeUploader *uuid.UUID
}

func FromModel(m *models.Item) *ItemDTO {
	if m == nil {
		return nil
	}
	dto := &ItemDTO{
		ID:                 m.ID,
		UploaderID:         m.UploaderID,
		Title:              m.Title,
		Description:        m.Description,
		Category:           m.Category,
		Condition:          m.Condition,
		Brand:              m.Brand,
		Images:             append([]string(nil), m.Images...),
		Points:             m.Points,
		OriginalPriceCents: m.OriginalPriceCents,
		ValuationStatus:    m.ValuationStatus,
		Status:             m.Status,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if m.Uploader != nil {
		dto.Uploader = &UploaderSummary{
			ID:          m.Uploader.ID,
			DisplayName: m.Uploader.DisplayName,
		}
	}
	return dto
}

func (c CreateItemDTO) ToModel() *models.Item {
	images := c.Images
	if images == nil {
		images = []string{}
	}
	valuationStatus := c.ValuationStatus
	if valuationStatus == "" {
		valuationStatus = enums.ValuationStatusUnvalued
	}
	return &models.Item{
		UploaderID:         c.UploaderID,
		Title:              c.Title,
		Description:        c.Description,
		Category:           c.Category,
		Condition:          c.Condition,
		Brand:              c.Brand,
		Images:             images,
		Points:             c.Points,
		OriginalPriceCents: c.OriginalPriceCents,
		ValuationStatus:    valuationStatus,
		Status:             enums.ItemStatusAvailable,
	}
}
