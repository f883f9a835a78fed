package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/An-Array/SM-Backend/internal/api/models"
	"github.com/An-Array/SM-Backend/internal/api/repository"
	"github.com/An-Array/SM-Backend/internal/token"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService defines the interface for registration and login.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *token.Service) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user. Duplicate emails surface as
// repository.ErrDuplicateEmail straight from the unique constraint.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return s.userRepo.Create(ctx, req.Email, req.Password)
}

// Login verifies the credentials and mints a session token on success.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}
