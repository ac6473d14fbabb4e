package app

import (
	"context"

	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

type OfferReadRepository interface {
	ListReceivedByOwner(ctx context.Context, ownerID string) ([]domain.Offer, error)
	ListSentByUser(ctx context.Context, userID string) ([]domain.OfferView, error)
}

// OfferQueryService is the read side of the offer state machine. Plain
// read-committed reads are enough; it never mutates.
type OfferQueryService struct {
	repo OfferReadRepository
}

func NewOfferQueryService(repo OfferReadRepository) *OfferQueryService {
	return &OfferQueryService{repo: repo}
}

// ListReceived returns offers targeting the actor's items, any status,
// newest first.
func (s *OfferQueryService) ListReceived(ctx context.Context, actorID string) ([]domain.Offer, error) {
	return s.repo.ListReceivedByOwner(ctx, actorID)
}

// ListSent returns the actor's outgoing offers enriched with both item
// titles and the target owner's id.
func (s *OfferQueryService) ListSent(ctx context.Context, actorID string) ([]domain.OfferView, error) {
	return s.repo.ListSentByUser(ctx, actorID)
}
