package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/atletia/storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// limit for uploaded image size
const maxUploadBytes = 10 << 20

// AdminCatalogService is interface for catalog management
type AdminCatalogService interface {
	// CreateProduct validates and inserts new product
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// UpdateProduct validates and updates product
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct removes product by id
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// CreateCategory validates and inserts new category
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	// UpdateCategory validates and updates category
	UpdateCategory(ctx context.Context, category *models.Category) error
	// DeleteCategory removes category by id
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// AdminOrderService is interface for order management
type AdminOrderService interface {
	// ListOrders returns all orders
	ListOrders(ctx context.Context) ([]models.Order, error)
	// UpdateStatus validates and persists a new order status
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

// Uploader is interface for the image CDN
type Uploader interface {
	// Upload sends one image and returns its delivery URL
	Upload(ctx context.Context, filename string, file io.Reader, folder string) (string, error)
}

// AdminHandler represents HTTP handler for back-office requests
type AdminHandler struct {
	catalog  AdminCatalogService
	orders   AdminOrderService
	uploader Uploader
}

// NewAdminHandler creates new AdminHandler instance
func NewAdminHandler(catalog AdminCatalogService, orders AdminOrderService, uploader Uploader) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		orders:   orders,
		uploader: uploader,
	}
}

type productRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description"`
	Price       int64    `json:"price"`
	SalePrice   *int64   `json:"sale_price"`
	Stock       int32    `json:"stock"`
	Images      []string `json:"images"`
	CategoryID  string   `json:"category_id"`
	Featured    bool     `json:"featured"`
}

func (pr productRequest) toModel() (*models.Product, error) {
	categoryID, err := uuid.Parse(pr.CategoryID)
	if err != nil {
		return nil, models.ErrInvalidProduct
	}
	images := pr.Images
	if images == nil {
		images = []string{}
	}
	return &models.Product{
		Name:        pr.Name,
		Slug:        pr.Slug,
		Description: pr.Description,
		Price:       pr.Price,
		SalePrice:   pr.SalePrice,
		Stock:       pr.Stock,
		Images:      images,
		CategoryID:  categoryID,
		Featured:    pr.Featured,
	}, nil
}

// CreateProduct creates catalog product
// 201 — created
// 400 — invalid payload
// 409 — slug already exists
// 500 — internal error
func (ah *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		product, err := req.toModel()
		if err != nil {
			http.Error(w, "invalid product", http.StatusBadRequest)
			return
		}

		product, err = ah.catalog.CreateProduct(r.Context(), product)
		if err != nil {
			writeAdminError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(toProductResponse(*product)); err != nil {
			return
		}
	}
}

// UpdateProduct updates catalog product
// 200 — updated
// 400 — invalid payload
// 404 — product does not exist
// 409 — slug already exists
// 500 — internal error
func (ah *AdminHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		product, err := req.toModel()
		if err != nil {
			http.Error(w, "invalid product", http.StatusBadRequest)
			return
		}
		product.ID = id

		if err := ah.catalog.UpdateProduct(r.Context(), product); err != nil {
			writeAdminError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// DeleteProduct removes catalog product
// 200 — deleted
// 400 — invalid id
// 404 — product does not exist
// 500 — internal error
func (ah *AdminHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		if err := ah.catalog.DeleteProduct(r.Context(), id); err != nil {
			writeAdminError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// CreateCategory creates catalog category
// 201 — created
// 400 — invalid payload
// 409 — slug already exists
// 500 — internal error
func (ah *AdminHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		category, err := ah.catalog.CreateCategory(r.Context(), &models.Category{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		resp := categoryResponse{
			ID:          category.ID.String(),
			Name:        category.Name,
			Slug:        category.Slug,
			Description: category.Description,
			ImageURL:    category.ImageURL,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// UpdateCategory updates catalog category
// 200 — updated
// 400 — invalid payload
// 404 — category does not exist
// 409 — slug already exists
// 500 — internal error
func (ah *AdminHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		err = ah.catalog.UpdateCategory(r.Context(), &models.Category{
			ID:          id,
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			writeAdminError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// DeleteCategory removes catalog category
// 200 — deleted
// 400 — invalid id
// 404 — category does not exist
// 500 — internal error
func (ah *AdminHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		if err := ah.catalog.DeleteCategory(r.Context(), id); err != nil {
			writeAdminError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// ListOrders returns all orders for the back office
// 200 — order list
// 500 — internal error
func (ah *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := ah.orders.ListOrders(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toOrderResponse(o))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sets order status from the back office
// 200 — updated
// 400 — invalid id or unknown status
// 404 — order does not exist
// 500 — internal error
func (ah *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		var req updateOrderStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if err := ah.orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidStatus):
				http.Error(w, "invalid status", http.StatusBadRequest)
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage pushes an image to the CDN and returns its delivery URL
// 200 — {url}
// 400 — missing file part
// 502 — CDN upload failed
func (ah *AdminHandler) UploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		folder := r.FormValue("folder")
		if folder == "" {
			folder = "products"
		}

		url, err := ah.uploader.Upload(r.Context(), header.Filename, file, folder)
		if err != nil {
			http.Error(w, "upload failed", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(uploadResponse{URL: url}); err != nil {
			return
		}
	}
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidProduct), errors.Is(err, models.ErrInvalidCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrConflictData):
		http.Error(w, "conflicts with existing data", http.StatusConflict)
	case errors.Is(err, models.ErrDataNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
