package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/An-Array/SM-Backend/internal/api/models"
)

var userTracer = otel.Tracer("repository.user")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, email, password string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type sqlUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQL-backed UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

// Create hashes the password and inserts a new user. Duplicate emails are
// caught by the UNIQUE constraint, not by a prior existence check, so two
// concurrent registrations cannot both succeed.
func (r *sqlUserRepository) Create(ctx context.Context, email, password string) (*models.User, error) {
	ctx, span := userTracer.Start(ctx, "UserRepository.Create")
	defer span.End()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	query := r.db.Rebind(`INSERT INTO users (email, password_hash) VALUES (?, ?) RETURNING id, created_at`)
	err = r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. A missing user is not an application
// error and returns (nil, nil).
func (r *sqlUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := userTracer.Start(ctx, "UserRepository.GetByEmail")
	defer span.End()

	var user models.User
	query := r.db.Rebind(`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`)
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by id.
func (r *sqlUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, span := userTracer.Start(ctx, "UserRepository.GetByID")
	defer span.End()

	var user models.User
	query := r.db.Rebind(`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`)
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}
