package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

func (r *OfferRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetItemForUpdate locks an item row for the rest of the transaction.
// Returns nil when the item does not exist.
func (r *OfferRepository) GetItemForUpdate(ctx context.Context, itemID string) (*domain.Item, error) {
	const query = `
SELECT id, owner_id, title, description, status, created_at
FROM items
WHERE id = $1
FOR UPDATE`

	var item domain.Item
	err := r.queryRow(ctx, query, itemID).
		Scan(&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Status, &item.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return &item, nil
}

// GetOwnedOfferForUpdate is the collapsed authorize-and-locate lookup: it
// returns the offer only when its target item belongs to ownerID, locking
// the offer row so concurrent accepts serialize. Zero rows (missing offer
// or someone else's offer, indistinguishable) comes back as nil.
func (r *OfferRepository) GetOwnedOfferForUpdate(ctx context.Context, offerID, ownerID string) (*domain.Offer, error) {
	const query = `
SELECT o.id, o.item_id, o.offered_by, o.offered_item_id, o.status, o.created_at
FROM offers o
JOIN items i ON o.item_id = i.id
WHERE o.id = $1 AND i.owner_id = $2
FOR UPDATE OF o`

	var o domain.Offer
	err := r.queryRow(ctx, query, offerID, ownerID).
		Scan(&o.ID, &o.ItemID, &o.OfferedBy, &o.OfferedItemID, &o.Status, &o.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get owned offer: %w", err)
	}
	return &o, nil
}

func (r *OfferRepository) CreateOffer(ctx context.Context, offer domain.Offer) error {
	const stmt = `
INSERT INTO offers (id, item_id, offered_by, offered_item_id, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		offer.ID,
		offer.ItemID,
		offer.OfferedBy,
		offer.OfferedItemID,
		offer.Status,
		offer.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}

func (r *OfferRepository) UpdateOfferStatus(ctx context.Context, offerID string, status domain.OfferStatus) error {
	const stmt = `UPDATE offers SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, offerID, status)
	if err != nil {
		return fmt.Errorf("update offer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOfferNotOwned
	}
	return nil
}

func (r *OfferRepository) MarkItemsExchanged(ctx context.Context, itemIDs []string) error {
	const stmt = `UPDATE items SET status = 'exchanged' WHERE id = ANY($1::uuid[])`

	if _, err := r.exec(ctx, stmt, itemIDs); err != nil {
		return fmt.Errorf("mark items exchanged: %w", err)
	}
	return nil
}

// RejectPendingOffersTouching rejects every pending offer that references
// one of the given items as its target or as its offered item, except the
// offer being accepted.
func (r *OfferRepository) RejectPendingOffersTouching(ctx context.Context, exceptOfferID string, itemIDs []string) (int64, error) {
	const stmt = `
UPDATE offers
SET status = 'rejected'
WHERE status = 'pending'
  AND id <> $1
  AND (item_id = ANY($2::uuid[]) OR offered_item_id = ANY($2::uuid[]))`

	tag, err := r.exec(ctx, stmt, exceptOfferID, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("reject pending offers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OfferRepository) ListReceivedByOwner(ctx context.Context, ownerID string) ([]domain.Offer, error) {
	const query = `
SELECT o.id, o.item_id, o.offered_by, o.offered_item_id, o.status, o.created_at
FROM offers o
JOIN items i ON o.item_id = i.id
WHERE i.owner_id = $1
ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list received offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var o domain.Offer
		if err := rows.Scan(&o.ID, &o.ItemID, &o.OfferedBy, &o.OfferedItemID, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate offers: %w", rows.Err())
	}
	return offers, nil
}

func (r *OfferRepository) ListSentByUser(ctx context.Context, userID string) ([]domain.OfferView, error) {
	const query = `
SELECT o.id, o.item_id, o.offered_by, o.offered_item_id, o.status, o.created_at,
       target.title, offered.title, target.owner_id
FROM offers o
JOIN items target ON o.item_id = target.id
JOIN items offered ON o.offered_item_id = offered.id
WHERE o.offered_by = $1
ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list sent offers: %w", err)
	}
	defer rows.Close()

	var views []domain.OfferView
	for rows.Next() {
		var v domain.OfferView
		if err := rows.Scan(
			&v.ID, &v.ItemID, &v.OfferedBy, &v.OfferedItemID, &v.Status, &v.CreatedAt,
			&v.ItemTitle, &v.OfferedItemTitle, &v.ItemOwnerID,
		); err != nil {
			return nil, fmt.Errorf("scan offer view: %w", err)
		}
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate offer views: %w", rows.Err())
	}
	return views, nil
}

func (r *OfferRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OfferRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
