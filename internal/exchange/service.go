package exchange

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rewearhq/rewear-backend/internal/items"
	"github.com/rewearhq/rewear-backend/pkg/db/models"
	"github.com/rewearhq/rewear-backend/pkg/enums"
	pkgerrors "github.com/rewearhq/rewear-backend/pkg/errors"
	"github.com/rewearhq/rewear-backend/pkg/logger"
	"github.com/rewearhq/rewear-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Service is the transactional core of the exchange: point redemptions and
// item-for-item swaps. Every state transition is all-or-nothing.
type Service interface {
	Redeem(ctx context.Context, userID, itemID uuid.UUID) (*RedemptionDTO, error)
	Propose(ctx context.Context, proposerID uuid.UUID, req ProposeRequest) (*SwapProposalDTO, error)
	Respond(ctx context.Context, proposalID, actorID uuid.UUID, accept bool) (*SwapProposalDTO, error)
	ListSwaps(ctx context.Context, userID uuid.UUID) (*SwapListDTO, error)
}

// ServiceParams bundles the dependencies for the exchange service.
type ServiceParams struct {
	Store   *Store
	Logger  *logger.Logger
	Metrics *metrics.ExchangeMetrics
}

type service struct {
	store   *Store
	logg    *logger.Logger
	metrics *metrics.ExchangeMetrics
}

// NewService builds the exchange service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "exchange store required")
	}
	return &service{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Redeem spends the caller's points on an available listing. The debit, the
// item flip, and the audit row commit together or not at all.
func (s *service) Redeem(ctx context.Context, userID, itemID uuid.UUID) (*RedemptionDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id is required")
	}

	started := time.Now()
	var result *RedemptionDTO

	err := s.store.RunAtomic(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		item, err := repo.GetItem(ctx, itemID)
		if err != nil {
			return notFoundOr(err, "item not found", "load item")
		}
		if item.UploaderID == userID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "you cannot redeem your own item")
		}
		if item.Status != enums.ItemStatusAvailable {
			return pkgerrors.New(pkgerrors.CodeItemUnavailable, "this item is no longer available")
		}

		if _, err := repo.GetUser(ctx, userID); err != nil {
			return notFoundOr(err, "user not found", "load user")
		}

		debited, err := repo.DebitPoints(ctx, userID, item.Points)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "debit points")
		}
		if !debited {
			return pkgerrors.New(pkgerrors.CodeInsufficientPoints, "not enough points for this item")
		}

		// balance after the guarded debit, read inside the same transaction
		user, err := repo.GetUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload balance")
		}

		flipped, err := repo.MarkItemSwapped(ctx, itemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark item swapped")
		}
		if !flipped {
			return pkgerrors.New(pkgerrors.CodeItemUnavailable, "this item is no longer available")
		}

		redemption := &models.Redemption{
			UserID: userID,
			ItemID: itemID,
			Points: item.Points,
		}
		if err := repo.CreateRedemption(ctx, redemption); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record redemption")
		}

		item.Status = enums.ItemStatusSwapped
		result = &RedemptionDTO{
			ID:             redemption.ID,
			Item:           items.FromModel(item),
			PointsSpent:    item.Points,
			BalanceAfter:   user.PointsBalance,
			RedeemedAt:     redemption.CreatedAt,
			DeliveryNeeded: true,
		}
		return nil
	})
	if err != nil {
		s.recordFailure(ctx, "redeem", err)
		return nil, err
	}

	s.metrics.ObserveDuration("redeem", time.Since(started))
	s.metrics.IncRedemption()
	s.logInfo(ctx, map[string]any{
		"item_id": itemID.String(),
		"points":  result.PointsSpent,
	}, "item redeemed")
	return result, nil
}

// Propose validates both sides of a swap and records a pending proposal. No
// reservation is taken; availability is re-checked when the receiver accepts.
func (s *service) Propose(ctx context.Context, proposerID uuid.UUID, req ProposeRequest) (*SwapProposalDTO, error) {
	if proposerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}
	if req.ProposerItemID == uuid.Nil || req.ReceiverItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "both item ids are required")
	}
	if req.ProposerItemID == req.ReceiverItemID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot swap an item for itself")
	}

	var result *SwapProposalDTO
	err := s.store.RunAtomic(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		offered, err := repo.GetItem(ctx, req.ProposerItemID)
		if err != nil {
			return notFoundOr(err, "offered item not found", "load offered item")
		}
		wanted, err := repo.GetItem(ctx, req.ReceiverItemID)
		if err != nil {
			return notFoundOr(err, "requested item not found", "load requested item")
		}

		if offered.UploaderID != proposerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "you can only offer your own item")
		}
		if wanted.UploaderID == proposerID {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot propose a swap with yourself")
		}
		if offered.Status != enums.ItemStatusAvailable {
			return pkgerrors.New(pkgerrors.CodeItemUnavailable, "your offered item is no longer available")
		}
		if wanted.Status != enums.ItemStatusAvailable {
			return pkgerrors.New(pkgerrors.CodeItemUnavailable, "this item is no longer available")
		}

		proposal := &models.SwapProposal{
			ProposerID:     proposerID,
			ProposerItemID: offered.ID,
			ReceiverID:     wanted.UploaderID,
			ReceiverItemID: wanted.ID,
			Status:         enums.SwapStatusPending,
		}
		if err := repo.CreateProposal(ctx, proposal); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create proposal")
		}

		proposal.ProposerItem = offered
		proposal.ReceiverItem = wanted
		result = proposalFromModel(proposal)
		return nil
	})
	if err != nil {
		s.recordFailure(ctx, "propose", err)
		return nil, err
	}

	s.logInfo(ctx, map[string]any{
		"proposal_id": result.ID.String(),
		"receiver_id": result.ReceiverID.String(),
	}, "swap proposed")
	return result, nil
}

// Respond resolves a pending proposal. Accepting flips both items and the
// proposal in one transaction; when either item was consumed in the meantime
// the proposal is auto-rejected and the caller sees PROPOSAL_STALE.
func (s *service) Respond(ctx context.Context, proposalID, actorID uuid.UUID, accept bool) (*SwapProposalDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}
	if proposalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposal id is required")
	}

	started := time.Now()
	var result *SwapProposalDTO
	var stale bool

	err := s.store.RunAtomic(ctx, func(tx *gorm.DB) error {
		stale = false
		repo := NewRepository(tx)

		proposal, err := repo.GetProposal(ctx, proposalID)
		if err != nil {
			return notFoundOr(err, "swap proposal not found", "load proposal")
		}
		if proposal.ReceiverID != actorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the item owner can respond to this swap")
		}
		if proposal.Status != enums.SwapStatusPending {
			return pkgerrors.New(pkgerrors.CodeProposalResolved, "this swap has already been responded to")
		}

		now := time.Now().UTC()

		if !accept {
			resolved, err := repo.ResolveProposal(ctx, proposalID, enums.SwapStatusRejected, now)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reject proposal")
			}
			if !resolved {
				return pkgerrors.New(pkgerrors.CodeProposalResolved, "this swap has already been responded to")
			}
			proposal.Status = enums.SwapStatusRejected
			proposal.RespondedAt = &now
			result = proposalFromModel(proposal)
			return nil
		}

		proposerFlipped, err := repo.MarkItemSwapped(ctx, proposal.ProposerItemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flip proposer item")
		}
		if !proposerFlipped {
			stale = true
			return pkgerrors.New(pkgerrors.CodeProposalStale, "one of the items in this swap is no longer available")
		}
		receiverFlipped, err := repo.MarkItemSwapped(ctx, proposal.ReceiverItemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flip receiver item")
		}
		if !receiverFlipped {
			stale = true
			return pkgerrors.New(pkgerrors.CodeProposalStale, "one of the items in this swap is no longer available")
		}

		resolved, err := repo.ResolveProposal(ctx, proposalID, enums.SwapStatusAccepted, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accept proposal")
		}
		if !resolved {
			return pkgerrors.New(pkgerrors.CodeProposalResolved, "this swap has already been responded to")
		}

		proposal.Status = enums.SwapStatusAccepted
		proposal.RespondedAt = &now
		result = proposalFromModel(proposal)
		return nil
	})
	if err != nil {
		if stale && pkgerrors.HasCode(err, pkgerrors.CodeProposalStale) {
			s.autoReject(ctx, proposalID)
		}
		s.recordFailure(ctx, "respond", err)
		return nil, err
	}

	outcome := "rejected"
	if accept {
		outcome = "accepted"
	}
	s.metrics.ObserveDuration("respond", time.Since(started))
	s.metrics.IncSwap(outcome)
	s.logInfo(ctx, map[string]any{
		"proposal_id": proposalID.String(),
		"outcome":     outcome,
	}, "swap resolved")
	return result, nil
}

// ListSwaps returns the caller's proposals split by direction. Pure read.
func (s *service) ListSwaps(ctx context.Context, userID uuid.UUID) (*SwapListDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}

	repo := NewRepository(s.store.DB())
	proposals, err := repo.ListProposalsForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list proposals")
	}

	list := &SwapListDTO{
		Sent:     []SwapProposalDTO{},
		Received: []SwapProposalDTO{},
	}
	for i := range proposals {
		dto := proposalFromModel(&proposals[i])
		if proposals[i].ProposerID == userID {
			list.Sent = append(list.Sent, *dto)
		} else {
			list.Received = append(list.Received, *dto)
		}
	}
	return list, nil
}

// autoReject closes a pending proposal whose items were consumed elsewhere.
// Runs in its own committed transaction after the accept rolled back.
func (s *service) autoReject(ctx context.Context, proposalID uuid.UUID) {
	err := s.store.RunAtomic(ctx, func(tx *gorm.DB) error {
		_, err := NewRepository(tx).ResolveProposal(ctx, proposalID, enums.SwapStatusRejected, time.Now().UTC())
		return err
	})
	if err != nil && s.logg != nil {
		ctx = s.logg.WithField(ctx, "proposal_id", proposalID.String())
		s.logg.Error(ctx, "auto-reject stale proposal", err)
		return
	}
	s.metrics.IncSwap("rejected")
}

func (s *service) recordFailure(ctx context.Context, operation string, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		s.metrics.IncFailure("INTERNAL_ERROR")
		return
	}
	s.metrics.IncFailure(string(typed.Code()))
	if typed.Code() == pkgerrors.CodeConflict {
		s.metrics.IncRetry()
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"operation": operation,
			"code":      string(typed.Code()),
		})
		s.logg.Warn(ctx, "exchange transaction failed")
	}
}

func (s *service) logInfo(ctx context.Context, fields map[string]any, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithFields(ctx, fields), msg)
}

func notFoundOr(err error, notFoundMsg, wrapMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, wrapMsg)
}
