package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"authd/internal/repository"
)

func newTestRepo(t *testing.T) (repository.UserRepository, *sql.DB) {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo, db
}

func TestCreateReturnsFreshRow(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.Create(ctx, "user@example.com", "hash-value")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "user@example.com", user.Email)
	require.Equal(t, "hash-value", user.PasswordHash)
	// timestamps come from the database defaults, not the caller
	require.False(t, user.CreatedAt.IsZero())
	require.False(t, user.UpdatedAt.IsZero())
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "user@example.com", "hash-one")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "user@example.com", "hash-two")
	require.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestGetByEmail(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "user@example.com", "hash-value")
	require.NoError(t, err)

	found, err := repo.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, created.PasswordHash, found.PasswordHash)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "user@example.com", "hash-value")
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, found.Email)

	_, err = repo.GetByID(ctx, created.ID+1)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdatedAtTrigger(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	// backdated row so the trigger-written timestamp is clearly newer
	res, err := db.ExecContext(ctx, `
INSERT INTO users (email, password_hash, created_at, updated_at)
VALUES ('old@example.com', 'hash-value', datetime('now', '-1 hour'), datetime('now', '-1 hour'))`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE users SET email = 'new@example.com' WHERE id = ?`, id)
	require.NoError(t, err)

	user, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", user.Email)
	require.True(t, user.UpdatedAt.After(user.CreatedAt))
}
