package exchange

import (
	"time"

	"github.com/google/uuid"

	"github.com/rewearhq/rewear-backend/internal/items"
	"github.com/rewearhq/rewear-backend/pkg/db/models"
	"github.com/rewearhq/rewear-backend/pkg/enums"
)

// RedeemRequest is the payload accepted by the redeem endpoint.
type RedeemRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}

// RedemptionDTO reports the outcome of a successful redemption.
type RedemptionDTO struct {
	ID             uuid.UUID      `json:"id"`
	Item           *items.ItemDTO `json:"item"`
	PointsSpent    int            `json:"points_spent"`
	BalanceAfter   int            `json:"balance_after"`
	RedeemedAt     time.Time      `json:"redeemed_at"`
	DeliveryNeeded bool           `json:"delivery_needed"`
}

// ProposeRequest is the payload accepted when opening a swap negotiation.
type ProposeRequest struct {
	ProposerItemID uuid.UUID `json:"proposer_item_id" validate:"required"`
	ReceiverItemID uuid.UUID `json:"receiver_item_id" validate:"required"`
}

// SwapProposalDTO is the transport shape for a proposal.
type SwapProposalDTO struct {
	ID           uuid.UUID        `json:"id"`
	ProposerID   uuid.UUID        `json:"proposer_id"`
	ReceiverID   uuid.UUID        `json:"receiver_id"`
	ProposerItem *items.ItemDTO   `json:"proposer_item,omitempty"`
	ReceiverItem *items.ItemDTO   `json:"receiver_item,omitempty"`
	Status       enums.SwapStatus `json:"status"`
	RespondedAt  *time.Time       `json:"responded_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// SwapListDTO groups a user's proposals by direction.
type SwapListDTO struct {
	Sent     []SwapProposalDTO `json:"sent"`
	Received []SwapProposalDTO `json:"received"`
}

func proposalFromModel(m *models.SwapProposal) *SwapProposalDTO {
	if m == nil {
		return nil
	}
	return &SwapProposalDTO{
		ID:           m.ID,
		ProposerID:   m.ProposerID,
		ReceiverID:   m.ReceiverID,
		ProposerItem: items.FromModel(m.ProposerItem),
		ReceiverItem: items.FromModel(m.ReceiverItem),
		Status:       m.Status,
		RespondedAt:  m.RespondedAt,
		CreatedAt:    m.CreatedAt,
	}
}
