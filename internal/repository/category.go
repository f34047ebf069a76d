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
	insertCategoryQuery = `
						INSERT INTO categories (name, slug, description, image_url)
						VALUES ($1, $2, $3, $4)
						RETURNING id, created_at
`
	selectCategoriesQuery = `
						SELECT id, name, slug, description, image_url, created_at, updated_at FROM categories
						ORDER BY name
`
	selectCategoryByIDQuery = `
						SELECT id, name, slug, description, image_url, created_at, updated_at FROM categories
						WHERE id = $1
`
	updateCategoryQuery = `
						UPDATE categories
						SET name = $1, slug = $2, description = $3, image_url = $4, updated_at = now()
						WHERE id = $5
`
	deleteCategoryQuery = `
						DELETE FROM categories
						WHERE id = $1
`
)

// CategoryRepository implements CategoryRepository interface
type CategoryRepository struct {
	db *postgres.DB
}

// NewCategoryRepository creates new CategoryRepository instance
func NewCategoryRepository(db *postgres.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// CreateCategory inserts new category to database
func (cr *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	err := cr.db.QueryRow(ctx, insertCategoryQuery,
		category.Name, category.Slug, category.Description, category.ImageURL).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if errCode := cr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return category, nil
}

// GetCategories returns all categories ordered by name
func (cr *CategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := cr.db.Query(ctx, selectCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}

	for rows.Next() {
		category := models.Category{}
		err = rows.Scan(&category.ID, &category.Name, &category.Slug, &category.Description,
			&category.ImageURL, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			continue
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetCategoryByID returns category by id
func (cr *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := models.Category{}
	err := cr.db.QueryRow(ctx, selectCategoryByIDQuery, id).Scan(&category.ID, &category.Name,
		&category.Slug, &category.Description, &category.ImageURL, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &category, nil
}

// UpdateCategory updates category fields
func (cr *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	cmd, err := cr.db.Exec(ctx, updateCategoryQuery,
		category.Name, category.Slug, category.Description, category.ImageURL, category.ID)
	if err != nil {
		if errCode := cr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteCategory removes category by id
func (cr *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	cmd, err := cr.db.Exec(ctx, deleteCategoryQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
