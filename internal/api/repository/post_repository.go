package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/An-Array/SM-Backend/internal/api/models"
)

var postTracer = otel.Tracer("repository.post")

// DefaultListLimit bounds a post listing when the caller does not.
const DefaultListLimit = 10

// PostRepository defines the interface for post data operations. Update and
// Delete enforce ownership inside a single transaction so the check and the
// mutation observe the same snapshot.
type PostRepository interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.PostWithAuthor, error)
	GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error)
	Create(ctx context.Context, ownerID int64, title, content string, published bool) (*models.Post, error)
	Update(ctx context.Context, id, ownerID int64, title, content string, published bool) (*models.Post, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

type sqlPostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new SQL-backed PostRepository.
func NewPostRepository(db *sqlx.DB) PostRepository {
	return &sqlPostRepository{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.published, p.owner_id, p.created_at,
	       u.id AS "created_by.id", u.email AS "created_by.email", u.created_at AS "created_by.created_at",
	       COUNT(v.post_id) AS votes
	FROM posts p
	JOIN users u ON u.id = p.owner_id
	LEFT JOIN votes v ON v.post_id = p.id`

// List returns posts whose title contains the search string, case-insensitively.
// Listing is not ownership-filtered; only mutation is.
func (r *sqlPostRepository) List(ctx context.Context, filter models.PostFilter) ([]models.PostWithAuthor, error) {
	ctx, span := postTracer.Start(ctx, "PostRepository.List", trace.WithAttributes(
		attribute.String("post.search", filter.Search),
	))
	defer span.End()

	// A limit of zero is honored as an empty page; only negative values fall
	// back to the default.
	if filter.Limit < 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	query := r.db.Rebind(postSelect + `
	WHERE LOWER(p.title) LIKE ?
	GROUP BY p.id, u.id
	ORDER BY p.id
	LIMIT ? OFFSET ?`)

	pattern := "%" + strings.ToLower(filter.Search) + "%"
	posts := []models.PostWithAuthor{}
	if err := r.db.SelectContext(ctx, &posts, query, pattern, filter.Limit, filter.Offset); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a single post with its owner and vote total.
func (r *sqlPostRepository) GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error) {
	ctx, span := postTracer.Start(ctx, "PostRepository.GetByID", trace.WithAttributes(
		attribute.Int64("post.id", id),
	))
	defer span.End()

	query := r.db.Rebind(postSelect + `
	WHERE p.id = ?
	GROUP BY p.id, u.id`)

	var post models.PostWithAuthor
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// Create inserts a new post owned by ownerID.
func (r *sqlPostRepository) Create(ctx context.Context, ownerID int64, title, content string, published bool) (*models.Post, error) {
	ctx, span := postTracer.Start(ctx, "PostRepository.Create")
	defer span.End()

	post := &models.Post{
		Title:     title,
		Content:   content,
		Published: published,
		OwnerID:   ownerID,
	}

	query := r.db.Rebind(`INSERT INTO posts (title, content, published, owner_id) VALUES (?, ?, ?, ?) RETURNING id, created_at`)
	err := r.db.QueryRowxContext(ctx, query, title, content, published, ownerID).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// Update fully replaces title, content and published. The ownership check and
// the write run in one transaction: the row is locked where the driver
// supports it, and the write re-verifies the row still exists through its
// affected count.
func (r *sqlPostRepository) Update(ctx context.Context, id, ownerID int64, title, content string, published bool) (*models.Post, error) {
	ctx, span := postTracer.Start(ctx, "PostRepository.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("post.id", id))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	post, err := lockOwned(ctx, tx, id, ownerID)
	if err != nil {
		return nil, err
	}

	query := tx.Rebind(`UPDATE posts SET title = ?, content = ?, published = ? WHERE id = ?`)
	res, err := tx.ExecContext(ctx, query, title, content, published, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return nil, ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	post.Title = title
	post.Content = content
	post.Published = published
	return post, nil
}

// Delete removes a post and, through the votes foreign key, every vote that
// references it. Same transaction discipline as Update.
func (r *sqlPostRepository) Delete(ctx context.Context, id, ownerID int64) error {
	ctx, span := postTracer.Start(ctx, "PostRepository.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("post.id", id))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockOwned(ctx, tx, id, ownerID); err != nil {
		return err
	}

	// Explicit vote cleanup keeps the no-orphaned-votes invariant independent
	// of whether the driver session has foreign keys enabled.
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM votes WHERE post_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete votes for post: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ownershipQuery builds the in-transaction post load. Postgres holds a row
// lock until commit; sqlite serializes writers already, so no clause is
// needed there.
func ownershipQuery(driverName string) string {
	query := `SELECT id, title, content, published, owner_id, created_at FROM posts WHERE id = ?`
	if driverName == "pgx" {
		query += ` FOR UPDATE`
	}
	return query
}

// lockOwned loads a post inside tx and verifies ownership. NotFound is checked
// before Forbidden, matching the API contract.
func lockOwned(ctx context.Context, tx *sqlx.Tx, id, ownerID int64) (*models.Post, error) {
	var post models.Post
	query := tx.Rebind(ownershipQuery(tx.DriverName()))
	if err := tx.GetContext(ctx, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post for ownership check: %w", err)
	}
	if post.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return &post, nil
}
