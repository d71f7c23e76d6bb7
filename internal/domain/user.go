package domain

import "time"

// User represents a registered account. PasswordHash never leaves the
// store/service boundary; responses are shaped at the HTTP layer.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
