package service

import (
	"context"
	"errors"
	"strings"

	"github.com/atletia/storefront/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user to database
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService implements registration and login
type UserService struct {
	repo  UserRepository
	token TokenService
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository, token TokenService) *UserService {
	return &UserService{
		repo:  repo,
		token: token,
	}
}

// Register creates a new customer account and returns the user with a fresh
// auth token.
func (us *UserService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", models.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		Role:         models.RoleCustomer,
		PasswordHash: string(hash),
	}

	user, err = us.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := us.token.CreateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns a fresh auth token
func (us *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := us.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return us.token.CreateToken(user)
}
