package domain

import "errors"

var (
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrItemNotOwned        = errors.New("item not found or not owned by you")
	ErrItemUnavailable     = errors.New("item is not available")
	ErrOfferedItemNotOwned = errors.New("you can only offer your own items")
	ErrOfferNotOwned       = errors.New("offer not found or target item not owned by you")
	ErrOfferNotPending     = errors.New("offer is no longer pending")
	ErrSelfOffer           = errors.New("cannot make an offer on your own item")
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidID           = errors.New("invalid id")
)
