package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/uzgnsodyum/shopping-site-2/pkg/httputil"
	"github.com/uzgnsodyum/shopping-site-2/pkg/validator"

	"github.com/uzgnsodyum/shopping-site-2/internal/service"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=500"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"max=100"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// productListResponse wraps the product page with its total count.
type productListResponse struct {
	Products any `json:"products"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	products, total, err := h.service.ListProducts(r.Context(), service.ListProductsInput{
		Search:  q.Get("q"),
		SortBy:  q.Get("sort"),
		Order:   q.Get("order"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: productListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}})
}

// Get handles GET /api/v1/products/{productId}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	detail, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), service.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}
