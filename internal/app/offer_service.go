package app

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/harikeerthpv07/BarterSystem/internal/clock"
	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

type OfferRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetItemForUpdate(ctx context.Context, itemID string) (*domain.Item, error)
	GetOwnedOfferForUpdate(ctx context.Context, offerID, ownerID string) (*domain.Offer, error)
	CreateOffer(ctx context.Context, offer domain.Offer) error
	UpdateOfferStatus(ctx context.Context, offerID string, status domain.OfferStatus) error
	MarkItemsExchanged(ctx context.Context, itemIDs []string) error
	RejectPendingOffersTouching(ctx context.Context, exceptOfferID string, itemIDs []string) (int64, error)
}

// OfferService owns the offer state machine: pending -> accepted or
// pending -> rejected, nothing else. Every mutation is one transaction
// against the store, which is the only synchronization point.
type OfferService struct {
	repo  OfferRepository
	clock clock.Clock
}

func NewOfferService(repo OfferRepository, clk clock.Clock) *OfferService {
	return &OfferService{
		repo:  repo,
		clock: clk,
	}
}

type CreateOfferInput struct {
	ItemID        string
	OfferedItemID string
}

// CreateOffer proposes trading the actor's item for someone else's. Both
// items are locked and re-checked inside the transaction so a settlement
// committing concurrently cannot slip a stale offer in.
func (s *OfferService) CreateOffer(ctx context.Context, actorID string, in CreateOfferInput) (domain.Offer, error) {
	var result domain.Offer

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		items, err := s.lockItems(txCtx, in.OfferedItemID, in.ItemID)
		if err != nil {
			return err
		}

		offered := items[in.OfferedItemID]
		if offered == nil || offered.OwnerID != actorID {
			return domain.ErrOfferedItemNotOwned
		}
		if offered.Status != domain.ItemStatusAvailable {
			return domain.ErrItemUnavailable
		}

		target := items[in.ItemID]
		if target == nil {
			return domain.ErrItemUnavailable
		}
		if target.OwnerID == actorID {
			return domain.ErrSelfOffer
		}
		if target.Status != domain.ItemStatusAvailable {
			return domain.ErrItemUnavailable
		}

		offer := domain.Offer{
			ID:            uuid.NewString(),
			ItemID:        in.ItemID,
			OfferedBy:     actorID,
			OfferedItemID: in.OfferedItemID,
			Status:        domain.OfferStatusPending,
			CreatedAt:     s.clock.Now(),
		}
		if err := s.repo.CreateOffer(txCtx, offer); err != nil {
			return err
		}

		result = offer
		return nil
	})
	if err != nil {
		return domain.Offer{}, err
	}
	return result, nil
}

// lockItems acquires row locks in sorted ID order so two offers referencing
// the same pair of items cannot deadlock each other.
func (s *OfferService) lockItems(ctx context.Context, ids ...string) (map[string]*domain.Item, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	items := make(map[string]*domain.Item, len(sorted))
	for _, id := range sorted {
		if _, done := items[id]; done {
			continue
		}
		item, err := s.repo.GetItemForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		items[id] = item
	}
	return items, nil
}

// AcceptOffer settles an exchange. In a single transaction it marks the
// offer accepted, both items exchanged, and rejects every other pending
// offer that references either item. Concurrent accepts serialize on the
// offer row lock; the loser re-reads a non-pending offer and fails. Both
// items are locked and re-checked so an item deleted after the offer was
// made can never leave the deleted state through settlement.
func (s *OfferService) AcceptOffer(ctx context.Context, actorID, offerID string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		offer, err := s.repo.GetOwnedOfferForUpdate(txCtx, offerID, actorID)
		if err != nil {
			return err
		}
		if offer == nil {
			return domain.ErrOfferNotOwned
		}
		if offer.Status != domain.OfferStatusPending {
			return domain.ErrOfferNotPending
		}

		exchanged := []string{offer.ItemID, offer.OfferedItemID}
		items, err := s.lockItems(txCtx, exchanged...)
		if err != nil {
			return err
		}
		for _, id := range exchanged {
			if item := items[id]; item == nil || item.Status != domain.ItemStatusAvailable {
				return domain.ErrItemUnavailable
			}
		}

		if err := s.repo.UpdateOfferStatus(txCtx, offer.ID, domain.OfferStatusAccepted); err != nil {
			return err
		}

		if err := s.repo.MarkItemsExchanged(txCtx, exchanged); err != nil {
			return err
		}

		if _, err := s.repo.RejectPendingOffersTouching(txCtx, offer.ID, exchanged); err != nil {
			return err
		}
		return nil
	})
}

// RejectOffer declines an offer on an item the actor owns. Single write,
// but still transactional so the lock and pending check cover the update.
func (s *OfferService) RejectOffer(ctx context.Context, actorID, offerID string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		offer, err := s.repo.GetOwnedOfferForUpdate(txCtx, offerID, actorID)
		if err != nil {
			return err
		}
		if offer == nil {
			return domain.ErrOfferNotOwned
		}
		if offer.Status != domain.OfferStatusPending {
			return domain.ErrOfferNotPending
		}

		return s.repo.UpdateOfferStatus(txCtx, offer.ID, domain.OfferStatusRejected)
	})
}
