package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harikeerthpv07/BarterSystem/internal/domain"
	"github.com/harikeerthpv07/BarterSystem/internal/testutil"
)

func TestItemRepository_CreateAndListAvailable(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewItemRepository(pool)
	u1 := testutil.InsertUser(t, ctx, pool, "u1")

	item := domain.Item{
		ID:          uuid.NewString(),
		OwnerID:     u1,
		Title:       "Lamp",
		Description: "works",
		Status:      domain.ItemStatusAvailable,
		CreatedAt:   time.Now().UTC(),
	}
	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	testutil.InsertItem(t, ctx, pool, u1, "Gone", domain.ItemStatusExchanged)
	testutil.InsertItem(t, ctx, pool, u1, "Trashed", domain.ItemStatusDeleted)

	items, err := repo.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 available item, got %d", len(items))
	}
	if items[0].ID != item.ID || items[0].Title != "Lamp" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestItemRepository_UpdateOwnedItem(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewItemRepository(pool)
	u1 := testutil.InsertUser(t, ctx, pool, "u1")
	u2 := testutil.InsertUser(t, ctx, pool, "u2")
	itemID := testutil.InsertItem(t, ctx, pool, u1, "Old", domain.ItemStatusAvailable)

	item, err := repo.UpdateOwnedItem(ctx, itemID, u1, "New", "desc")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if item.Title != "New" || item.Description != "desc" {
		t.Fatalf("unexpected item after update: %+v", item)
	}

	if _, err := repo.UpdateOwnedItem(ctx, itemID, u2, "Hijack", ""); err != domain.ErrItemNotOwned {
		t.Fatalf("expected ErrItemNotOwned for non-owner, got %v", err)
	}
	if _, err := repo.UpdateOwnedItem(ctx, uuid.NewString(), u1, "X", ""); err != domain.ErrItemNotOwned {
		t.Fatalf("expected ErrItemNotOwned for missing item, got %v", err)
	}
	if _, err := repo.UpdateOwnedItem(ctx, "not-a-uuid", u1, "X", ""); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestItemRepository_SoftDeleteOwnedItem(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewItemRepository(pool)
	u1 := testutil.InsertUser(t, ctx, pool, "u1")
	u2 := testutil.InsertUser(t, ctx, pool, "u2")
	itemID := testutil.InsertItem(t, ctx, pool, u1, "Lamp", domain.ItemStatusAvailable)

	if err := repo.SoftDeleteOwnedItem(ctx, itemID, u2); err != domain.ErrItemNotOwned {
		t.Fatalf("expected ErrItemNotOwned for non-owner, got %v", err)
	}
	if err := repo.SoftDeleteOwnedItem(ctx, itemID, u1); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if got := testutil.ItemStatus(t, ctx, pool, itemID); got != domain.ItemStatusDeleted {
		t.Fatalf("expected deleted, got %s", got)
	}
	// Second delete still succeeds; the row still matches the guard.
	if err := repo.SoftDeleteOwnedItem(ctx, itemID, u1); err != nil {
		t.Fatalf("repeat soft delete: %v", err)
	}
}

func TestItemRepository_SoftDeleteRejectsPendingOffers(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewItemRepository(pool)
	u1 := testutil.InsertUser(t, ctx, pool, "u1")
	u2 := testutil.InsertUser(t, ctx, pool, "u2")
	u3 := testutil.InsertUser(t, ctx, pool, "u3")
	itemA := testutil.InsertItem(t, ctx, pool, u1, "Item A", domain.ItemStatusAvailable)
	itemB := testutil.InsertItem(t, ctx, pool, u2, "Item B", domain.ItemStatusAvailable)
	itemC := testutil.InsertItem(t, ctx, pool, u3, "Item C", domain.ItemStatusAvailable)

	// item-b appears once as the offered item and once as the target.
	asOffered := testutil.InsertOffer(t, ctx, pool, itemA, u2, itemB, domain.OfferStatusPending)
	asTarget := testutil.InsertOffer(t, ctx, pool, itemB, u3, itemC, domain.OfferStatusPending)
	unrelated := testutil.InsertOffer(t, ctx, pool, itemA, u3, itemC, domain.OfferStatusPending)
	settled := testutil.InsertOffer(t, ctx, pool, itemA, u2, itemB, domain.OfferStatusRejected)

	if err := repo.SoftDeleteOwnedItem(ctx, itemB, u2); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if got := testutil.OfferStatus(t, ctx, pool, asOffered); got != domain.OfferStatusRejected {
		t.Fatalf("expected offer with deleted offered item rejected, got %s", got)
	}
	if got := testutil.OfferStatus(t, ctx, pool, asTarget); got != domain.OfferStatusRejected {
		t.Fatalf("expected offer targeting deleted item rejected, got %s", got)
	}
	if got := testutil.OfferStatus(t, ctx, pool, unrelated); got != domain.OfferStatusPending {
		t.Fatalf("expected unrelated offer untouched, got %s", got)
	}
	if got := testutil.OfferStatus(t, ctx, pool, settled); got != domain.OfferStatusRejected {
		t.Fatalf("expected already settled offer unchanged, got %s", got)
	}
}
