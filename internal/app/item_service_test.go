package app

import (
	"context"
	"testing"
	"time"

	"github.com/harikeerthpv07/BarterSystem/internal/clock"
	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

func TestItemService_CreateItem(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeItemRepo(nil)
	svc := NewItemService(repo, clock.NewFixed(now))

	item, err := svc.CreateItem(context.Background(), "u1", CreateItemInput{
		Title:       "  Vintage lamp  ",
		Description: "Works fine",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.ID == "" {
		t.Fatalf("expected item ID to be set")
	}
	if item.Title != "Vintage lamp" {
		t.Fatalf("expected trimmed title, got %q", item.Title)
	}
	if item.Status != domain.ItemStatusAvailable {
		t.Fatalf("expected available, got %s", item.Status)
	}
	if item.CreatedAt != now {
		t.Fatalf("expected created_at %v, got %v", now, item.CreatedAt)
	}

	if _, err := svc.CreateItem(context.Background(), "u1", CreateItemInput{Title: "   "}); err != domain.ErrTitleRequired {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestItemService_ListAvailable_FiltersTerminalStatuses(t *testing.T) {
	t.Parallel()

	repo := newFakeItemRepo([]domain.Item{
		{ID: "i1", OwnerID: "u1", Status: domain.ItemStatusAvailable},
		{ID: "i2", OwnerID: "u1", Status: domain.ItemStatusExchanged},
		{ID: "i3", OwnerID: "u2", Status: domain.ItemStatusDeleted},
	})
	svc := NewItemService(repo, clock.NewSystem())

	items, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != "i1" {
		t.Fatalf("expected only available item i1, got %+v", items)
	}
}

func TestItemService_UpdateItem(t *testing.T) {
	t.Parallel()

	repo := newFakeItemRepo([]domain.Item{
		{ID: "i1", OwnerID: "u1", Title: "Old", Status: domain.ItemStatusAvailable},
	})
	svc := NewItemService(repo, clock.NewSystem())

	item, err := svc.UpdateItem(context.Background(), "u1", "i1", CreateItemInput{Title: "New", Description: "d"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.Title != "New" {
		t.Fatalf("expected updated title, got %q", item.Title)
	}

	if _, err := svc.UpdateItem(context.Background(), "u2", "i1", CreateItemInput{Title: "X"}); err != domain.ErrItemNotOwned {
		t.Fatalf("expected ErrItemNotOwned for non-owner, got %v", err)
	}
	if _, err := svc.UpdateItem(context.Background(), "u1", "missing", CreateItemInput{Title: "X"}); err != domain.ErrItemNotOwned {
		t.Fatalf("expected ErrItemNotOwned for missing item, got %v", err)
	}
}

func TestItemService_DeleteItem_IsIdempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeItemRepo([]domain.Item{
		{ID: "i1", OwnerID: "u1", Status: domain.ItemStatusAvailable},
	})
	svc := NewItemService(repo, clock.NewSystem())

	if err := svc.DeleteItem(context.Background(), "u2", "i1"); err != domain.ErrItemNotOwned {
		t.Fatalf("expected ErrItemNotOwned for non-owner, got %v", err)
	}

	if err := svc.DeleteItem(context.Background(), "u1", "i1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := repo.items["i1"].Status; got != domain.ItemStatusDeleted {
		t.Fatalf("expected deleted, got %s", got)
	}

	// Repeating the delete is a no-op success.
	if err := svc.DeleteItem(context.Background(), "u1", "i1"); err != nil {
		t.Fatalf("expected repeat delete to succeed, got %v", err)
	}
}

type fakeItemRepo struct {
	items map[string]*domain.Item
	order []string
}

func newFakeItemRepo(items []domain.Item) *fakeItemRepo {
	m := make(map[string]*domain.Item, len(items))
	order := make([]string, 0, len(items))
	for i := range items {
		item := items[i]
		m[item.ID] = &item
		order = append(order, item.ID)
	}
	return &fakeItemRepo{items: m, order: order}
}

func (f *fakeItemRepo) CreateItem(_ context.Context, item domain.Item) error {
	f.items[item.ID] = &item
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeItemRepo) ListAvailable(_ context.Context) ([]domain.Item, error) {
	var out []domain.Item
	for _, id := range f.order {
		if item := f.items[id]; item.Status == domain.ItemStatusAvailable {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) UpdateOwnedItem(_ context.Context, itemID, ownerID, title, description string) (domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return domain.Item{}, domain.ErrItemNotOwned
	}
	item.Title = title
	item.Description = description
	return *item, nil
}

func (f *fakeItemRepo) SoftDeleteOwnedItem(_ context.Context, itemID, ownerID string) error {
	item, ok := f.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return domain.ErrItemNotOwned
	}
	item.Status = domain.ItemStatusDeleted
	return nil
}
