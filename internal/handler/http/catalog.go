package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/atletia/storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CatalogService is interface for catalog-related requests
type CatalogService interface {
	// ListProducts returns filtered page of products
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	// GetProduct returns product by id
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// ListCategories returns all categories
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CatalogHandler represents HTTP handler for catalog browsing
type CatalogHandler struct {
	svc CatalogService
}

// NewCatalogHandler creates new CatalogHandler instance
func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type productResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description,omitempty"`
	Price       int64    `json:"price"`
	SalePrice   *int64   `json:"sale_price,omitempty"`
	Stock       int32    `json:"stock"`
	Images      []string `json:"images"`
	CategoryID  string   `json:"category_id"`
	Featured    bool     `json:"featured"`
	CreatedAt   string   `json:"created_at"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		Images:      p.Images,
		CategoryID:  p.CategoryID.String(),
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

// ListProducts returns catalog page
// 200 — product list
// 400 — invalid filter values
// 500 — internal error
func (ch *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.ProductFilter{
			SortBy: r.URL.Query().Get("sort"),
			Order:  r.URL.Query().Get("order"),
		}

		if catParam := r.URL.Query().Get("category_id"); catParam != "" {
			catID, err := uuid.Parse(catParam)
			if err != nil {
				http.Error(w, "invalid category id", http.StatusBadRequest)
				return
			}
			filter.CategoryID = &catID
		}
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			limit, err := strconv.Atoi(limitParam)
			if err != nil {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			filter.Limit = limit
		}
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			page, err := strconv.Atoi(pageParam)
			if err != nil {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			filter.Page = page
		}

		products, err := ch.svc.ListProducts(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]productResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// GetProduct returns one product
// 200 — product
// 400 — invalid id
// 404 — product does not exist
// 500 — internal error
func (ch *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		product, err := ch.svc.GetProduct(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "product not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toProductResponse(*product)); err != nil {
			return
		}
	}
}

type categoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// ListCategories returns all categories
// 200 — category list
// 500 — internal error
func (ch *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := ch.svc.ListCategories(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]categoryResponse, 0, len(categories))
		for _, c := range categories {
			resp = append(resp, categoryResponse{
				ID:          c.ID.String(),
				Name:        c.Name,
				Slug:        c.Slug,
				Description: c.Description,
				ImageURL:    c.ImageURL,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}
