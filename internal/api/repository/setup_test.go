package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/An-Array/SM-Backend/internal/api/models"
	"github.com/An-Array/SM-Backend/internal/db"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	pool, err := db.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func createTestUser(t *testing.T, pool *sqlx.DB, email string) *models.User {
	t.Helper()

	user, err := NewUserRepository(pool).Create(context.Background(), email, "password123")
	require.NoError(t, err)
	return user
}

func createTestPost(t *testing.T, pool *sqlx.DB, ownerID int64, title string) *models.Post {
	t.Helper()

	post, err := NewPostRepository(pool).Create(context.Background(), ownerID, title, "some content", true)
	require.NoError(t, err)
	return post
}

func countVotes(t *testing.T, pool *sqlx.DB, postID int64) int {
	t.Helper()

	var n int
	err := pool.Get(&n, pool.Rebind(`SELECT COUNT(*) FROM votes WHERE post_id = ?`), postID)
	require.NoError(t, err)
	return n
}
