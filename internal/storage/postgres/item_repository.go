package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) CreateItem(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO items (id, owner_id, title, description, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		item.ID,
		item.OwnerID,
		item.Title,
		item.Description,
		item.Status,
		item.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) ListAvailable(ctx context.Context) ([]domain.Item, error) {
	const query = `
SELECT id, owner_id, title, description, status, created_at
FROM items
WHERE status = 'available'
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list available items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate items: %w", rows.Err())
	}
	return items, nil
}

// UpdateOwnedItem updates title and description of an item the caller owns.
// The guard is the WHERE clause itself: zero rows means either the item does
// not exist or the caller does not own it, and both come back as
// ErrItemNotOwned.
func (r *ItemRepository) UpdateOwnedItem(ctx context.Context, itemID, ownerID, title, description string) (domain.Item, error) {
	const stmt = `
UPDATE items
SET title = $3, description = $4
WHERE id = $1 AND owner_id = $2
RETURNING id, owner_id, title, description, status, created_at`

	var item domain.Item
	err := r.queryRow(ctx, stmt, itemID, ownerID, title, description).
		Scan(&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Status, &item.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotOwned
		}
		return domain.Item{}, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// SoftDeleteOwnedItem marks an owned item deleted and, in the same
// transaction, rejects every pending offer that references the item as its
// target or as the offered item. Repeating the call is a no-op success: the
// guarded row still matches and there are no pending offers left to reject.
func (r *ItemRepository) SoftDeleteOwnedItem(ctx context.Context, itemID, ownerID string) error {
	const stmt = `
UPDATE items
SET status = 'deleted'
WHERE id = $1 AND owner_id = $2`

	const rejectOffers = `
UPDATE offers
SET status = 'rejected'
WHERE status = 'pending'
  AND (item_id = $1 OR offered_item_id = $1)`

	return withTx(ctx, r.pool, func(txCtx context.Context) error {
		tag, err := r.exec(txCtx, stmt, itemID, ownerID)
		if err != nil {
			if isInvalidUUID(err) {
				return domain.ErrInvalidID
			}
			return fmt.Errorf("soft delete item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrItemNotOwned
		}

		if _, err := r.exec(txCtx, rejectOffers, itemID); err != nil {
			return fmt.Errorf("reject offers on deleted item: %w", err)
		}
		return nil
	})
}

func (r *ItemRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ItemRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
