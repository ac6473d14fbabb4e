package domain

import "time"

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)

// Offer proposes trading OfferedItemID (owned by OfferedBy) for ItemID
// (the target, owned by someone else). Accepted and rejected are terminal.
type Offer struct {
	ID            string
	ItemID        string
	OfferedBy     string
	OfferedItemID string
	Status        OfferStatus
	CreatedAt     time.Time
}

// OfferView is the sent-offers read model: an offer enriched with both item
// titles and the target item's owner for display.
type OfferView struct {
	Offer
	ItemTitle        string
	OfferedItemTitle string
	ItemOwnerID      string
}
