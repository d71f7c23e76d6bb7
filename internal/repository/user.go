package repository

import (
	"context"
	"errors"

	"authd/internal/domain"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an insert violates email uniqueness.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	// Create inserts a user and returns the freshly-read row so callers
	// observe the generated id and database-assigned timestamps.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
