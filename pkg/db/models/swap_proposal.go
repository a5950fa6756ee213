package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rewearhq/rewear-backend/pkg/enums"
)

// SwapProposal is the durable record of one item-for-item negotiation. Exactly
// one transition leaves pending; once terminal the row is immutable.
type SwapProposal struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ProposerID     uuid.UUID        `gorm:"column:proposer_id;type:uuid;not null;index:swap_proposals_proposer_id_idx"`
	ProposerItemID uuid.UUID        `gorm:"column:proposer_item_id;type:uuid;not null"`
	ReceiverID     uuid.UUID        `gorm:"column:receiver_id;type:uuid;not null;index:swap_proposals_receiver_id_idx"`
	ReceiverItemID uuid.UUID        `gorm:"column:receiver_item_id;type:uuid;not null"`
	Status         enums.SwapStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	RespondedAt    *time.Time       `gorm:"column:responded_at"`
	ProposerItem   *Item            `gorm:"foreignKey:ProposerItemID"`
	ReceiverItem   *Item            `gorm:"foreignKey:ReceiverItemID"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
}
