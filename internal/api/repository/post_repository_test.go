package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/An-Array/SM-Backend/internal/api/models"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewPostRepository(pool)

	owner := createTestUser(t, pool, "owner@x.com")

	post, err := repo.Create(ctx, owner.ID, "t", "c", true)
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, owner.ID, post.OwnerID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, "c", got.Content)
	assert.True(t, got.Published)
	assert.Equal(t, owner.ID, got.CreatedBy.ID)
	assert.Equal(t, "owner@x.com", got.CreatedBy.Email)
	assert.Equal(t, int64(0), got.Votes)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewPostRepository(pool)

	_, err := repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostRepository_List(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewPostRepository(pool)

	owner := createTestUser(t, pool, "lister@x.com")
	createTestPost(t, pool, owner.ID, "Favourite Food")
	createTestPost(t, pool, owner.ID, "favourite music")
	createTestPost(t, pool, owner.ID, "Something else")

	tests := []struct {
		name       string
		filter     models.PostFilter
		wantTitles []string
	}{
		{
			name:       "case-insensitive substring match",
			filter:     models.PostFilter{Search: "FAVOURITE", Limit: DefaultListLimit},
			wantTitles: []string{"Favourite Food", "favourite music"},
		},
		{
			name:       "empty search matches everything",
			filter:     models.PostFilter{Limit: DefaultListLimit},
			wantTitles: []string{"Favourite Food", "favourite music", "Something else"},
		},
		{
			name:       "limit bounds the window",
			filter:     models.PostFilter{Limit: 2},
			wantTitles: []string{"Favourite Food", "favourite music"},
		},
		{
			name:       "zero limit is an empty page, not the default",
			filter:     models.PostFilter{Limit: 0},
			wantTitles: []string{},
		},
		{
			name:       "negative limit falls back to the default",
			filter:     models.PostFilter{Limit: -1},
			wantTitles: []string{"Favourite Food", "favourite music", "Something else"},
		},
		{
			name:       "offset skips ahead",
			filter:     models.PostFilter{Limit: 2, Offset: 2},
			wantTitles: []string{"Something else"},
		},
		{
			name:       "no matches",
			filter:     models.PostFilter{Search: "paneer", Limit: DefaultListLimit},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			titles := make([]string, 0, len(posts))
			for _, p := range posts {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestOwnershipQuery_LocksRowOnPostgres(t *testing.T) {
	// Postgres runs READ COMMITTED, so the ownership check must hold the row
	// until the mutation commits. SQLite has a single writer and needs no
	// lock clause.
	assert.True(t, strings.HasSuffix(ownershipQuery("pgx"), "FOR UPDATE"))
	assert.NotContains(t, ownershipQuery("sqlite"), "FOR UPDATE")
}

func TestPostRepository_Update(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewPostRepository(pool)

	owner := createTestUser(t, pool, "u1@x.com")
	other := createTestUser(t, pool, "u2@x.com")
	post := createTestPost(t, pool, owner.ID, "before")

	t.Run("owner replaces all fields", func(t *testing.T) {
		updated, err := repo.Update(ctx, post.ID, owner.ID, "after", "new content", false)
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, "new content", updated.Content)
		assert.False(t, updated.Published)

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, err := repo.Update(ctx, post.ID, other.ID, "hijacked", "x", true)
		assert.ErrorIs(t, err, ErrNotOwner)

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := repo.Update(ctx, post.ID+1000, owner.ID, "x", "x", true)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	repo := NewPostRepository(pool)

	owner := createTestUser(t, pool, "d1@x.com")
	other := createTestUser(t, pool, "d2@x.com")
	post := createTestPost(t, pool, owner.ID, "doomed")

	t.Run("non-owner is rejected and the post survives", func(t *testing.T) {
		err := repo.Delete(ctx, post.ID, other.ID)
		assert.ErrorIs(t, err, ErrNotOwner)

		_, err = repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		err := repo.Delete(ctx, post.ID+1000, owner.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := repo.Delete(ctx, post.ID, owner.ID)
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostRepository_DeleteCascadesVotes(t *testing.T) {
	ctx := context.Background()
	pool := newTestDB(t)
	postRepo := NewPostRepository(pool)
	voteRepo := NewVoteRepository(pool)

	owner := createTestUser(t, pool, "cascade@x.com")
	voter := createTestUser(t, pool, "voter@x.com")
	post := createTestPost(t, pool, owner.ID, "voted on")

	require.NoError(t, voteRepo.Cast(ctx, post.ID, owner.ID))
	require.NoError(t, voteRepo.Cast(ctx, post.ID, voter.ID))
	require.Equal(t, 2, countVotes(t, pool, post.ID))

	require.NoError(t, postRepo.Delete(ctx, post.ID, owner.ID))

	// No orphaned vote rows may survive the post.
	assert.Equal(t, 0, countVotes(t, pool, post.ID))
}
