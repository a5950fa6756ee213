package exchange

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rewearhq/rewear-backend/pkg/db/models"
	"github.com/rewearhq/rewear-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository issues the raw reads and guarded writes used by exchange
// transactions. Guard updates report whether they actually changed a row so
// the service can re-validate optimistic assumptions inside the transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a repository to the provided gorm DB or transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUser loads a user row.
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetItem loads an item row.
func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetProposal loads a swap proposal row.
func (r *Repository) GetProposal(ctx context.Context, id uuid.UUID) (*models.SwapProposal, error) {
	var proposal models.SwapProposal
	if err := r.db.WithContext(ctx).First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

// MarkItemSwapped flips an available item to swapped. Returns false when the
// item was already consumed by a concurrent transaction.
func (r *Repository) MarkItemSwapped(ctx context.Context, itemID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND status = ?", itemID, enums.ItemStatusAvailable).
		Updates(map[string]any{
			"status":     enums.ItemStatusSwapped,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DebitPoints subtracts points from a user's balance only when the balance
// covers the debit. Returns false when the balance was insufficient.
func (r *Repository) DebitPoints(ctx context.Context, userID uuid.UUID, points int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND points_balance >= ?", userID, points).
		Updates(map[string]any{
			"points_balance": gorm.Expr("points_balance - ?", points),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateProposal persists a pending swap proposal.
func (r *Repository) CreateProposal(ctx context.Context, proposal *models.SwapProposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

// ResolveProposal moves a pending proposal to the given terminal status.
// Returns false when the proposal already left pending.
func (r *Repository) ResolveProposal(ctx context.Context, proposalID uuid.UUID, status enums.SwapStatus, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SwapProposal{}).
		Where("id = ? AND status = ?", proposalID, enums.SwapStatusPending).
		Updates(map[string]any{
			"status":       status,
			"responded_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateRedemption inserts the immutable audit row for a point redemption.
func (r *Repository) CreateRedemption(ctx context.Context, redemption *models.Redemption) error {
	return r.db.WithContext(ctx).Create(redemption).Error
}

// ListProposalsForUser returns every proposal touching the user, newest first,
// with both item records attached.
func (r *Repository) ListProposalsForUser(ctx context.Context, userID uuid.UUID) ([]models.SwapProposal, error) {
	var proposals []models.SwapProposal
	if err := r.db.WithContext(ctx).
		Preload("ProposerItem").
		Preload("ReceiverItem").
		Where("proposer_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}
