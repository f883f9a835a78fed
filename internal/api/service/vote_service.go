package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/An-Array/SM-Backend/internal/api/models"
	"github.com/An-Array/SM-Backend/internal/api/repository"
)

var meter = otel.Meter("service.vote")

// VoteService drives the per-(user, post) vote state machine: dir=1 casts an
// up-vote, dir=0 retracts one. The target post must exist before either
// transition is attempted.
type VoteService interface {
	Vote(ctx context.Context, voter *models.User, req *models.VoteRequest) error
}

type voteService struct {
	postRepo  repository.PostRepository
	voteRepo  repository.VoteRepository
	castTotal metric.Int64Counter
}

// NewVoteService creates a new VoteService.
func NewVoteService(postRepo repository.PostRepository, voteRepo repository.VoteRepository) VoteService {
	castTotal, _ := meter.Int64Counter("votes_cast_total",
		metric.WithDescription("Number of successfully cast up-votes"))
	return &voteService{
		postRepo:  postRepo,
		voteRepo:  voteRepo,
		castTotal: castTotal,
	}
}

// Vote applies one transition. The post-existence check runs first so a vote
// against a missing post reports the post, not the vote, as absent.
func (s *voteService) Vote(ctx context.Context, voter *models.User, req *models.VoteRequest) error {
	if _, err := s.postRepo.GetByID(ctx, req.PostID); err != nil {
		return err
	}

	if *req.Dir == models.VoteCast {
		if err := s.voteRepo.Cast(ctx, req.PostID, voter.ID); err != nil {
			return err
		}
		s.castTotal.Add(ctx, 1)
		return nil
	}
	return s.voteRepo.Retract(ctx, req.PostID, voter.ID)
}
