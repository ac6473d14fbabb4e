package domain

import "time"

// User is a registered account. PasswordHash never leaves the auth layer.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
