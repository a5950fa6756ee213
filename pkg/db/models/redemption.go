package models

import (
	"time"

	"github.com/google/uuid"
)

// Redemption records an immutable point debit tied to a consumed item. Inserted
// in the same transaction that debits the balance and flips the item.
type Redemption struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:redemptions_user_id_idx"`
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:redemptions_item_id_key"`
	Points    int       `gorm:"column:points;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
