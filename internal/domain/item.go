package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusExchanged ItemStatus = "exchanged"
	ItemStatusDeleted   ItemStatus = "deleted"
)

// Item is a listed object owned by exactly one user. Items are never removed
// physically; deletion and settlement only move the status forward.
type Item struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      ItemStatus
	CreatedAt   time.Time
}
