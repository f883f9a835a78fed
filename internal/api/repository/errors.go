package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors, mapped to HTTP status codes at the controller
// boundary.
var (
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrPostNotFound indicates the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrNotOwner indicates an authenticated caller tried to mutate a post
	// they do not own.
	ErrNotOwner = errors.New("not the owner of this post")

	// ErrVoteExists indicates the user has already voted on the post.
	ErrVoteExists = errors.New("vote already exists")

	// ErrVoteNotFound indicates a retraction for a vote that does not exist.
	ErrVoteNotFound = errors.New("vote not found")
)

// isUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver. SQLite surfaces these only as message text;
// Postgres uses SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}

// isForeignKeyViolation reports whether err is a foreign-key failure from
// either supported driver. Postgres uses SQLSTATE 23503.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
