package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rewearhq/rewear-backend/pkg/enums"
)

// Item represents a member listing. Status only ever moves available -> swapped,
// and only inside an exchange transaction.
type Item struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	UploaderID         uuid.UUID             `gorm:"column:uploader_id;type:uuid;not null;index:items_uploader_id_idx"`
	Title              string                `gorm:"column:title;not null"`
	Description        string                `gorm:"column:description;not null"`
	Category           enums.ItemCategory    `gorm:"column:category;type:text;not null"`
	Condition          enums.ItemCondition   `gorm:"column:condition;type:text;not null"`
	Brand              *string               `gorm:"column:brand"`
	Images             pq.StringArray        `gorm:"column:images;type:text[];not null"`
	Points             int                   `gorm:"column:points;not null;check:points > 0"`
	OriginalPriceCents *int                  `gorm:"column:original_price_cents"`
	ValuationStatus    enums.ValuationStatus `gorm:"column:valuation_status;type:text;not null;default:'unvalued'"`
	Status             enums.ItemStatus      `gorm:"column:status;type:text;not null;default:'available';index:items_status_idx"`
	Uploader           *User                 `gorm:"foreignKey:UploaderID"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
