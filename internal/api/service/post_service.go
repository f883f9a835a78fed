package service

import (
	"context"

	"github.com/An-Array/SM-Backend/internal/api/models"
	"github.com/An-Array/SM-Backend/internal/api/repository"
)

// PostService defines the interface for post business logic. Every protected
// operation receives the already-authenticated owner as an explicit argument;
// nothing here re-resolves the caller.
type PostService interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.PostWithAuthor, error)
	Get(ctx context.Context, id int64) (*models.PostWithAuthor, error)
	Create(ctx context.Context, owner *models.User, req *models.PostRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, owner *models.User, req *models.PostRequest) (*models.Post, error)
	Delete(ctx context.Context, id int64, owner *models.User) error
}

type postService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) List(ctx context.Context, filter models.PostFilter) ([]models.PostWithAuthor, error) {
	return s.postRepo.List(ctx, filter)
}

func (s *postService) Get(ctx context.Context, id int64) (*models.PostWithAuthor, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) Create(ctx context.Context, owner *models.User, req *models.PostRequest) (*models.Post, error) {
	return s.postRepo.Create(ctx, owner.ID, req.Title, req.Content, req.IsPublished())
}

func (s *postService) Update(ctx context.Context, id int64, owner *models.User, req *models.PostRequest) (*models.Post, error) {
	return s.postRepo.Update(ctx, id, owner.ID, req.Title, req.Content, req.IsPublished())
}

func (s *postService) Delete(ctx context.Context, id int64, owner *models.User) error {
	return s.postRepo.Delete(ctx, id, owner.ID)
}
