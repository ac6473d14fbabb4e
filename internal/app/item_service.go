package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/harikeerthpv07/BarterSystem/internal/clock"
	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

type ItemRepository interface {
	CreateItem(ctx context.Context, item domain.Item) error
	ListAvailable(ctx context.Context) ([]domain.Item, error)
	UpdateOwnedItem(ctx context.Context, itemID, ownerID, title, description string) (domain.Item, error)
	SoftDeleteOwnedItem(ctx context.Context, itemID, ownerID string) error
}

type ItemService struct {
	repo  ItemRepository
	clock clock.Clock
}

func NewItemService(repo ItemRepository, clk clock.Clock) *ItemService {
	return &ItemService{
		repo:  repo,
		clock: clk,
	}
}

type CreateItemInput struct {
	Title       string
	Description string
}

func (s *ItemService) CreateItem(ctx context.Context, actorID string, in CreateItemInput) (domain.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Item{}, domain.ErrTitleRequired
	}

	item := domain.Item{
		ID:          uuid.NewString(),
		OwnerID:     actorID,
		Title:       title,
		Description: in.Description,
		Status:      domain.ItemStatusAvailable,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// ListAvailable returns every item still in the available pool; exchanged
// and deleted items never show up here.
func (s *ItemService) ListAvailable(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListAvailable(ctx)
}

// UpdateItem edits title and description of an item the actor owns. The
// missing-or-not-owned cases collapse into ErrItemNotOwned so callers learn
// nothing about items that are not theirs.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID string, in CreateItemInput) (domain.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Item{}, domain.ErrTitleRequired
	}
	return s.repo.UpdateOwnedItem(ctx, itemID, actorID, title, in.Description)
}

// DeleteItem soft-deletes an owned item; pending offers referencing the
// item are rejected in the same transaction. Deleting an already deleted
// item succeeds again; the end state is the same.
func (s *ItemService) DeleteItem(ctx context.Context, actorID, itemID string) error {
	return s.repo.SoftDeleteOwnedItem(ctx, itemID, actorID)
}
