package service

import (
	"context"
	"strings"

	"github.com/atletia/storefront/internal/models"
	"github.com/google/uuid"
)

// ProductRepository is interface for interacting with product-related data
type ProductRepository interface {
	// CreateProduct inserts new product to database
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// GetProductByID returns product by id
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// GetProducts returns filtered page of products
	GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	// UpdateProduct updates all mutable product fields
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct removes product by id
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository is interface for interacting with category-related data
type CategoryRepository interface {
	// CreateCategory inserts new category to database
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	// GetCategories returns all categories
	GetCategories(ctx context.Context) ([]models.Category, error)
	// GetCategoryByID returns category by id
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// UpdateCategory updates category fields
	UpdateCategory(ctx context.Context, category *models.Category) error
	// DeleteCategory removes category by id
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// CatalogService implements catalog browsing and admin catalog management
type CatalogService struct {
	products   ProductRepository
	categories CategoryRepository
}

// NewCatalogService creates new CatalogService instance
func NewCatalogService(products ProductRepository, categories CategoryRepository) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
	}
}

// ListProducts returns filtered page of products
func (cs *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return cs.products.GetProducts(ctx, filter)
}

// GetProduct returns product by id
func (cs *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return cs.products.GetProductByID(ctx, id)
}

// CreateProduct validates and inserts new product
func (cs *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return cs.products.CreateProduct(ctx, product)
}

// UpdateProduct validates and updates product
func (cs *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return cs.products.UpdateProduct(ctx, product)
}

// DeleteProduct removes product by id
func (cs *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return cs.products.DeleteProduct(ctx, id)
}

// ListCategories returns all categories
func (cs *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return cs.categories.GetCategories(ctx)
}

// CreateCategory validates and inserts new category
func (cs *CatalogService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return cs.categories.CreateCategory(ctx, category)
}

// UpdateCategory validates and updates category
func (cs *CatalogService) UpdateCategory(ctx context.Context, category *models.Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	return cs.categories.UpdateCategory(ctx, category)
}

// DeleteCategory removes category by id
func (cs *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return cs.categories.DeleteCategory(ctx, id)
}

func validateProduct(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Slug) == "" {
		return models.ErrInvalidProduct
	}
	if product.Price < 0 || (product.SalePrice != nil && *product.SalePrice < 0) {
		return models.ErrInvalidProduct
	}
	if product.CategoryID == uuid.Nil {
		return models.ErrInvalidProduct
	}
	return nil
}

func validateCategory(category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" || strings.TrimSpace(category.Slug) == "" {
		return models.ErrInvalidCategory
	}
	return nil
}
