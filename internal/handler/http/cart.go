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

// CartHandler handles HTTP requests for cart and checkout endpoints.
type CartHandler struct {
	carts   *service.CartService
	pricing *service.PricingService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(carts *service.CartService, pricing *service.PricingService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		pricing: pricing,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=1,lte=99"`
	SpecialNote string `json:"special_note" validate:"max=500"`
}

// UpdateItemRequest is the JSON request body for updating a cart line. A
// missing special_note field leaves the stored note unchanged.
type UpdateItemRequest struct {
	Quantity    int     `json:"quantity" validate:"required,gte=1,lte=99"`
	SpecialNote *string `json:"special_note" validate:"omitempty,max=500"`
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req AddItemRequest
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

	cart, err := h.carts.AddItem(r.Context(), userID, service.AddItemInput{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		SpecialNote: req.SpecialNote,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// UpdateItem handles PUT /api/v1/cart/items/{itemId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	var req UpdateItemRequest
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

	cart, err := h.carts.UpdateItem(r.Context(), userID, itemID, service.UpdateItemInput{
		Quantity:    req.Quantity,
		SpecialNote: req.SpecialNote,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	cart, err := h.carts.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}

// Quote handles GET /api/v1/cart/quote
func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	quote, err := h.pricing.Quote(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}

// Checkout handles POST /api/v1/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	result, err := h.pricing.Checkout(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}
