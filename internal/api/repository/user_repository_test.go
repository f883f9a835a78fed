package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewUserRepository(pool)

	user, err := repo.Create(ctx, "a@x.com", "pw1secret")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	// Plaintext must never be stored; only a verifiable bcrypt hash.
	assert.NotEqual(t, "pw1secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1secret")))
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewUserRepository(pool)

	_, err := repo.Create(ctx, "dup@x.com", "password1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "dup@x.com", "password2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The failed attempt must not have touched the store.
	var n int
	err = pool.Get(&n, pool.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), "dup@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewUserRepository(pool)

	created := createTestUser(t, pool, "b@x.com")

	found, err := repo.GetByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// Absent user is not an error.
	missing, err := repo.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewUserRepository(pool)

	created := createTestUser(t, pool, "c@x.com")

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", found.Email)

	_, err = repo.GetByID(ctx, created.ID+1000)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
