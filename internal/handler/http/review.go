package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uzgnsodyum/shopping-site-2/pkg/httputil"
	"github.com/uzgnsodyum/shopping-site-2/pkg/validator"

	"github.com/uzgnsodyum/shopping-site-2/internal/service"
)

// ReviewHandler handles HTTP requests for product review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// AddReviewRequest is the JSON request body for submitting a review.
type AddReviewRequest struct {
	Author  string `json:"author" validate:"required,min=1,max=200"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title" validate:"max=500"`
	Comment string `json:"comment" validate:"max=5000"`
}

// List handles GET /api/v1/products/{productId}/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	list, err := h.service.ListReviews(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: list})
}

// Create handles POST /api/v1/products/{productId}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req AddReviewRequest
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

	review, err := h.service.AddReview(r.Context(), productID, service.AddReviewInput{
		Author:  req.Author,
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}
