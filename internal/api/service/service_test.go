package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/An-Array/SM-Backend/internal/api/repository"
	"github.com/An-Array/SM-Backend/internal/db"
	"github.com/An-Array/SM-Backend/internal/token"
)

type testEnv struct {
	pool     *sqlx.DB
	tokens   *token.Service
	users    UserService
	posts    PostService
	votes    VoteService
	userRepo repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pool, err := db.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	voteRepo := repository.NewVoteRepository(pool)
	tokens := token.NewService("service-test-secret-key", 30*time.Minute)

	return &testEnv{
		pool:     pool,
		tokens:   tokens,
		users:    NewUserService(userRepo, tokens),
		posts:    NewPostService(postRepo),
		votes:    NewVoteService(postRepo, voteRepo),
		userRepo: userRepo,
	}
}
