package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/atletia/storefront/internal/models"
	"github.com/atletia/storefront/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	selectProductColumns = `id, name, slug, description, price, sale_price, stock, images, category_id, featured, created_at, updated_at`

	insertProductQuery = `
						INSERT INTO products (name, slug, description, price, sale_price, stock, images, category_id, featured)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
						RETURNING id, created_at
`
	selectProductByIDQuery = `
						SELECT ` + selectProductColumns + ` FROM products
						WHERE id = $1
`
	updateProductQuery = `
						UPDATE products
						SET name = $1, slug = $2, description = $3, price = $4, sale_price = $5,
						    stock = $6, images = $7, category_id = $8, featured = $9, updated_at = now()
						WHERE id = $10
`
	deleteProductQuery = `
						DELETE FROM products
						WHERE id = $1
`
)

// allowed listing sort columns
var productSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"price":      "price",
}

// ProductRepository implements ProductRepository interface
type ProductRepository struct {
	db *postgres.DB
}

// NewProductRepository creates new ProductRepository instance
func NewProductRepository(db *postgres.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// CreateProduct inserts new product to database
func (pr *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := pr.db.QueryRow(ctx, insertProductQuery,
		product.Name, product.Slug, product.Description, product.Price, product.SalePrice,
		product.Stock, product.Images, product.CategoryID, product.Featured).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if errCode := pr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return product, nil
}

// GetProductByID returns product by id
func (pr *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return pr.scanProduct(pr.db.QueryRow(ctx, selectProductByIDQuery, id))
}

// GetProducts returns filtered page of products
func (pr *ProductRepository) GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	sortBy, ok := productSortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	dir := "DESC"
	if filter.Order == "asc" {
		dir = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `SELECT ` + selectProductColumns + ` FROM products`
	args := []any{}
	if filter.CategoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *filter.CategoryID)
	}
	query += fmt.Sprintf(` ORDER BY %s %s LIMIT %d OFFSET %d`, sortBy, dir, limit, offset)

	rows, err := pr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		product, err := pr.scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// UpdateProduct updates all mutable product fields
func (pr *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	cmd, err := pr.db.Exec(ctx, updateProductQuery,
		product.Name, product.Slug, product.Description, product.Price, product.SalePrice,
		product.Stock, product.Images, product.CategoryID, product.Featured, product.ID)
	if err != nil {
		if errCode := pr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteProduct removes product by id
func (pr *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	cmd, err := pr.db.Exec(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

func (pr *ProductRepository) scanProduct(row pgx.Row) (*models.Product, error) {
	product := models.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.Slug, &product.Description,
		&product.Price, &product.SalePrice, &product.Stock, &product.Images,
		&product.CategoryID, &product.Featured, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &product, nil
}
