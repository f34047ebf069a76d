package repository

import (
	"context"
	"errors"

	"github.com/atletia/storefront/internal/models"
	"github.com/atletia/storefront/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertUserQuery = `
						INSERT INTO users (email, name, role, password_hash)
						VALUES ($1, $2, $3, $4)
						RETURNING id, created_at
`
	selectUserByEmailQuery = `
						SELECT id, email, name, role, password_hash, created_at FROM users
						WHERE email = $1
`
	selectUserByIDQuery = `
						SELECT id, email, name, role, password_hash, created_at FROM users
						WHERE id = $1
`
)

// UserRepository implements UserRepository interface
type UserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates new UserRepository instance
func NewUserRepository(db *postgres.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts new user to database
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := ur.db.QueryRow(ctx, insertUserQuery, user.Email, user.Name, user.Role, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return user, nil
}

// GetUserByEmail returns user by email
func (ur *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return ur.scanUser(ur.db.QueryRow(ctx, selectUserByEmailQuery, email))
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return ur.scanUser(ur.db.QueryRow(ctx, selectUserByIDQuery, id))
}

func (ur *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	user := models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}
