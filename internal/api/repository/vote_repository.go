package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var voteTracer = otel.Tracer("repository.vote")

// VoteRepository defines the interface for the vote ledger. At most one vote
// exists per (post, user) pair; the composite primary key enforces this, not
// an application-level check.
type VoteRepository interface {
	Cast(ctx context.Context, postID, userID int64) error
	Retract(ctx context.Context, postID, userID int64) error
}

type sqlVoteRepository struct {
	db *sqlx.DB
}

// NewVoteRepository creates a new SQL-backed VoteRepository.
func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &sqlVoteRepository{db: db}
}

// Cast records an up-vote. A second cast for the same pair hits the primary
// key and returns ErrVoteExists, even when two casts race. A cast for a post
// deleted after the service-level existence check hits the foreign key and
// returns ErrPostNotFound.
func (r *sqlVoteRepository) Cast(ctx context.Context, postID, userID int64) error {
	ctx, span := voteTracer.Start(ctx, "VoteRepository.Cast")
	defer span.End()
	span.SetAttributes(attribute.Int64("post.id", postID), attribute.Int64("user.id", userID))

	query := r.db.Rebind(`INSERT INTO votes (post_id, user_id) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		if isUniqueViolation(err) {
			return ErrVoteExists
		}
		if isForeignKeyViolation(err) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to cast vote: %w", err)
	}
	return nil
}

// Retract removes an existing up-vote. Zero rows affected means there was no
// vote to retract.
func (r *sqlVoteRepository) Retract(ctx context.Context, postID, userID int64) error {
	ctx, span := voteTracer.Start(ctx, "VoteRepository.Retract")
	defer span.End()
	span.SetAttributes(attribute.Int64("post.id", postID), attribute.Int64("user.id", userID))

	query := r.db.Rebind(`DELETE FROM votes WHERE post_id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to retract vote: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrVoteNotFound
	}
	return nil
}
